package domain

// SKU is a pack size such as "5 kg". Products reference SKUs through an IDList.
type SKU struct {
	ID          uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Quantity    int    `gorm:"column:quantity;not null" json:"quantity"`
	UnitEnglish string `gorm:"column:unit_english;type:varchar(50);not null" json:"unit_english"`
	UnitHindi   string `gorm:"column:unit_hindi;type:varchar(50);not null" json:"unit_hindi"`
	Audit
}

func (SKU) TableName() string {
	return "tbl_sku_master"
}

func (s SKU) PrimaryKey() uint64 { return s.ID }

func (s SKU) ListRow() []any {
	return []any{s.Quantity, s.UnitEnglish, s.UnitHindi}
}

var SKUDescriptor = Descriptor{
	Table:                SKU{}.TableName(),
	Label:                "sku",
	SearchColumns:        []string{"unit_english", "unit_hindi"},
	NumericSearchColumns: []string{"quantity"},
	SortColumns:          []string{"id", "id", "quantity", "unit_english", "unit_hindi", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
		{Param: "unit", Column: "unit_english"},
	},
}
