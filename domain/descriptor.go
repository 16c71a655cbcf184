package domain

type FilterKind int

const (
	// FilterEquals matches the column exactly.
	FilterEquals FilterKind = iota
	// FilterListContains matches one element of a comma-delimited id list column.
	FilterListContains
)

// Filter maps a query-string parameter onto a column predicate.
type Filter struct {
	Param  string
	Column string
	Kind   FilterKind
}

// Descriptor configures the generic list/get/create/update stack for one table.
type Descriptor struct {
	Table string
	// Label is used in messages, e.g. "category".
	Label string
	// NameColumn holds the human-facing name checked for uniqueness. Empty disables the check.
	NameColumn string
	// SearchColumns are OR-matched with a case-insensitive substring predicate.
	SearchColumns []string
	// NumericSearchColumns get an exact-match branch when the search text is a number.
	NumericSearchColumns []string
	// SortColumns is indexed by the admin table column position.
	SortColumns []string
	Filters     []Filter
	// RequireActive adds status = "1" to the base list predicate.
	RequireActive bool
	Preloads      []string
	// Bucket overrides MIME based upload routing.
	Bucket string
}

// WithActiveOnly returns a copy of the descriptor restricted to active rows.
func (d Descriptor) WithActiveOnly() Descriptor {
	d.RequireActive = true
	return d
}
