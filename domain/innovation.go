package domain

// Innovation is a highlighted feature shown under a product.
type Innovation struct {
	ID                 uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	ProductID          uint64 `gorm:"column:product_id;not null;index" json:"product_id"`
	TitleEnglish       string `gorm:"column:title_english;type:varchar(255);not null" json:"title_english"`
	TitleHindi         string `gorm:"column:title_hindi;type:varchar(255);not null" json:"title_hindi"`
	DescriptionEnglish string `gorm:"column:description_english;type:text" json:"description_english"`
	DescriptionHindi   string `gorm:"column:description_hindi;type:text" json:"description_hindi"`
	UploadImg          string `gorm:"column:upload_img;type:varchar(255)" json:"upload_img"`
	Audit
}

func (Innovation) TableName() string {
	return "tbl_product_innovation"
}

func (i Innovation) PrimaryKey() uint64 { return i.ID }

func (i Innovation) ListRow() []any {
	return []any{i.ProductID, i.TitleEnglish, i.TitleHindi, i.UploadImg}
}

func (i *Innovation) FileFields() map[string]*string {
	return map[string]*string{"upload_img": &i.UploadImg}
}

var InnovationDescriptor = Descriptor{
	Table:         Innovation{}.TableName(),
	Label:         "innovation",
	SearchColumns: []string{"title_english", "title_hindi"},
	SortColumns:   []string{"id", "id", "product_id", "title_english", "title_hindi", "upload_img", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
		{Param: "product_id", Column: "product_id"},
	},
}
