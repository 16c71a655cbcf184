package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// Flag is the "0"/"1" marker used by the status and is_deleted columns.
type Flag string

const (
	FlagOff Flag = "0"
	FlagOn  Flag = "1"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrUnknownModel = errors.New("unknown model")
	ErrInvalidID    = errors.New("invalid id")
)

// Audit is embedded by every managed table. Rows are hidden by flipping
// IsDeleted, never removed, except through the hard destroy path.
type Audit struct {
	Status    Flag      `gorm:"column:status;type:char(1);not null;default:'1'" json:"status"`
	IsDeleted Flag      `gorm:"column:is_deleted;type:char(1);not null;default:'0';index" json:"is_deleted"`
	CreatedOn time.Time `gorm:"column:created_on;autoCreateTime" json:"created_on"`
	UpdatedOn time.Time `gorm:"column:updated_on;autoUpdateTime" json:"updated_on"`
}

func (a Audit) StatusFlag() Flag {
	if a.Status == "" {
		return FlagOn
	}
	return a.Status
}

// Visible reports whether the row is not soft deleted.
func (a Audit) Visible() bool {
	return a.IsDeleted != FlagOn
}

// Record is implemented by every entity served through the generic admin stack.
type Record interface {
	TableName() string
	PrimaryKey() uint64
	StatusFlag() Flag
	// ListRow returns the entity columns placed between id and status in a
	// positional list row. Order is part of the admin table contract.
	ListRow() []any
}

// Named records carry a human-facing name that must be unique among visible rows.
type Named interface {
	UniqueName() string
}

// GalleryOwner exposes multi-file columns keyed by their form field. New
// uploads for a field replace the whole list.
type GalleryOwner interface {
	GalleryFields() map[string]*datatypes.JSONSlice[string]
}

// FileOwner exposes the filename columns of a record keyed by their form field.
type FileOwner interface {
	FileFields() map[string]*string
}
