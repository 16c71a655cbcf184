package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

const idListDelimiter = ","

// IDList is a list of foreign keys stored in a single text column as a
// comma-delimited string. Encoding and decoding happen only here.
type IDList []string

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	for _, id := range l {
		if strings.Contains(id, idListDelimiter) {
			return nil, fmt.Errorf("id list element %q contains delimiter %q", id, idListDelimiter)
		}
	}
	return strings.Join(l, idListDelimiter), nil
}

// Scan implements sql.Scanner. Legacy rows may hold a JSON array instead of
// a delimited string; both forms decode to the same list.
func (l *IDList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}

	parsed, err := ParseIDList(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseIDList decodes the stored representation.
func ParseIDList(raw string) (IDList, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return IDList{}, nil
	}

	if strings.HasPrefix(raw, "[") {
		var values []any
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, fmt.Errorf("invalid id list %q: %w", raw, err)
		}
		out := make(IDList, 0, len(values))
		for _, v := range values {
			s := strings.TrimSpace(fmt.Sprint(v))
			if s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}

	parts := strings.Split(raw, idListDelimiter)
	out := make(IDList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func (IDList) GormDataType() string {
	return "text"
}

func (l IDList) String() string {
	return strings.Join(l, idListDelimiter)
}
