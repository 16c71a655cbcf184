package domain

// Banner is a home page slider entry.
type Banner struct {
	ID              uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	TitleEnglish    string `gorm:"column:title_english;type:varchar(255);not null" json:"title_english"`
	TitleHindi      string `gorm:"column:title_hindi;type:varchar(255);not null" json:"title_hindi"`
	SubtitleEnglish string `gorm:"column:subtitle_english;type:varchar(500)" json:"subtitle_english"`
	SubtitleHindi   string `gorm:"column:subtitle_hindi;type:varchar(500)" json:"subtitle_hindi"`
	LinkURL         string `gorm:"column:link_url;type:varchar(500)" json:"link_url"`
	SortOrder       int    `gorm:"column:sort_order;default:0" json:"sort_order"`
	UploadImg       string `gorm:"column:upload_img;type:varchar(255)" json:"upload_img"`
	Audit
}

func (Banner) TableName() string {
	return "tbl_home_banner"
}

func (b Banner) PrimaryKey() uint64 { return b.ID }

func (b Banner) ListRow() []any {
	return []any{b.TitleEnglish, b.TitleHindi, b.SortOrder, b.UploadImg}
}

func (b *Banner) FileFields() map[string]*string {
	return map[string]*string{"upload_img": &b.UploadImg}
}

var BannerDescriptor = Descriptor{
	Table:                Banner{}.TableName(),
	Label:                "banner",
	SearchColumns:        []string{"title_english", "title_hindi"},
	NumericSearchColumns: []string{"sort_order"},
	SortColumns:          []string{"id", "id", "title_english", "title_hindi", "sort_order", "upload_img", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
	},
}
