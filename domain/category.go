package domain

// CREATE TABLE tbl_category_master (
//     id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//     title_english   VARCHAR(255) NOT NULL,
//     title_hindi     VARCHAR(255) NOT NULL,
//     upload_img      VARCHAR(255),
//     status          CHAR(1) NOT NULL DEFAULT '1',
//     is_deleted      CHAR(1) NOT NULL DEFAULT '0',
//     created_on      DATETIME,
//     updated_on      DATETIME
// );

type Category struct {
	ID           uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	TitleEnglish string `gorm:"column:title_english;type:varchar(255);not null" json:"title_english"`
	TitleHindi   string `gorm:"column:title_hindi;type:varchar(255);not null" json:"title_hindi"`
	UploadImg    string `gorm:"column:upload_img;type:varchar(255)" json:"upload_img"`
	Audit
}

func (Category) TableName() string {
	return "tbl_category_master"
}

func (c Category) PrimaryKey() uint64 { return c.ID }

func (c Category) UniqueName() string { return c.TitleEnglish }

func (c Category) ListRow() []any {
	return []any{c.TitleEnglish, c.TitleHindi, c.UploadImg}
}

func (c *Category) FileFields() map[string]*string {
	return map[string]*string{"upload_img": &c.UploadImg}
}

var CategoryDescriptor = Descriptor{
	Table:         Category{}.TableName(),
	Label:         "category",
	NameColumn:    "title_english",
	SearchColumns: []string{"title_english", "title_hindi"},
	SortColumns:   []string{"id", "id", "title_english", "title_hindi", "upload_img", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
	},
}
