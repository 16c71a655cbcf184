package domain

import (
	"gorm.io/datatypes"
)

// CREATE TABLE tbl_product_master (
//     id                    BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     category_id           BIGINT UNSIGNED NOT NULL,
//     name_english          VARCHAR(255) NOT NULL,
//     name_hindi            VARCHAR(255) NOT NULL,
//     description_english   TEXT,
//     description_hindi     TEXT,
//     sku_id                TEXT,            -- "1,2,7"
//     upload_img            VARCHAR(255),
//     upload_multiple_img   JSON,
//     brochure              VARCHAR(255),
//     video                 VARCHAR(255),
//     status, is_deleted, created_on, updated_on
// );

type Product struct {
	ID                 uint64                     `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	CategoryID         uint64                     `gorm:"column:category_id;not null;index" json:"category_id"`
	NameEnglish        string                     `gorm:"column:name_english;type:varchar(255);not null" json:"name_english"`
	NameHindi          string                     `gorm:"column:name_hindi;type:varchar(255);not null" json:"name_hindi"`
	DescriptionEnglish string                     `gorm:"column:description_english;type:text" json:"description_english"`
	DescriptionHindi   string                     `gorm:"column:description_hindi;type:text" json:"description_hindi"`
	SKUIDs             IDList                     `gorm:"column:sku_id" json:"sku_id"`
	UploadImg          string                     `gorm:"column:upload_img;type:varchar(255)" json:"upload_img"`
	UploadMultipleImg  datatypes.JSONSlice[string] `gorm:"column:upload_multiple_img" json:"upload_multiple_img"`
	Brochure           string                     `gorm:"column:brochure;type:varchar(255)" json:"brochure"`
	Video              string                     `gorm:"column:video;type:varchar(255)" json:"video"`
	Audit

	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Innovations []Innovation `gorm:"foreignKey:ProductID" json:"innovations,omitempty"`
}

func (Product) TableName() string {
	return "tbl_product_master"
}

func (p Product) PrimaryKey() uint64 { return p.ID }

func (p Product) UniqueName() string { return p.NameEnglish }

func (p Product) ListRow() []any {
	categoryTitle := ""
	if p.Category != nil {
		categoryTitle = p.Category.TitleEnglish
	}
	return []any{p.NameEnglish, p.NameHindi, categoryTitle, p.SKUIDs.String(), p.UploadImg}
}

func (p *Product) FileFields() map[string]*string {
	return map[string]*string{
		"upload_img": &p.UploadImg,
		"brochure":   &p.Brochure,
		"video":      &p.Video,
	}
}

func (p *Product) GalleryFields() map[string]*datatypes.JSONSlice[string] {
	return map[string]*datatypes.JSONSlice[string]{
		"upload_multiple_img": &p.UploadMultipleImg,
	}
}

var ProductDescriptor = Descriptor{
	Table:         Product{}.TableName(),
	Label:         "product",
	NameColumn:    "name_english",
	SearchColumns: []string{"name_english", "name_hindi"},
	SortColumns:   []string{"id", "id", "name_english", "name_hindi", "category_id", "sku_id", "upload_img", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
		{Param: "category_id", Column: "category_id"},
		{Param: "sku", Column: "sku_id", Kind: FilterListContains},
	},
	Preloads: []string{"Category"},
}
