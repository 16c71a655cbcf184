package domain

type Department struct {
	ID          uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	NameEnglish string `gorm:"column:name_english;type:varchar(255);not null" json:"name_english"`
	NameHindi   string `gorm:"column:name_hindi;type:varchar(255);not null" json:"name_hindi"`
	Audit
}

func (Department) TableName() string {
	return "tbl_department"
}

func (d Department) PrimaryKey() uint64 { return d.ID }

func (d Department) UniqueName() string { return d.NameEnglish }

func (d Department) ListRow() []any {
	return []any{d.NameEnglish, d.NameHindi}
}

var DepartmentDescriptor = Descriptor{
	Table:         Department{}.TableName(),
	Label:         "department",
	NameColumn:    "name_english",
	SearchColumns: []string{"name_english", "name_hindi"},
	SortColumns:   []string{"id", "id", "name_english", "name_hindi", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
	},
}

type Designation struct {
	ID          uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	NameEnglish string `gorm:"column:name_english;type:varchar(255);not null" json:"name_english"`
	NameHindi   string `gorm:"column:name_hindi;type:varchar(255);not null" json:"name_hindi"`
	Audit
}

func (Designation) TableName() string {
	return "tbl_designation"
}

func (d Designation) PrimaryKey() uint64 { return d.ID }

func (d Designation) UniqueName() string { return d.NameEnglish }

func (d Designation) ListRow() []any {
	return []any{d.NameEnglish, d.NameHindi}
}

var DesignationDescriptor = Descriptor{
	Table:         Designation{}.TableName(),
	Label:         "designation",
	NameColumn:    "name_english",
	SearchColumns: []string{"name_english", "name_hindi"},
	SortColumns:   []string{"id", "id", "name_english", "name_hindi", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
	},
}
