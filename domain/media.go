package domain

type MediaCategory struct {
	ID           uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	TitleEnglish string `gorm:"column:title_english;type:varchar(255);not null" json:"title_english"`
	TitleHindi   string `gorm:"column:title_hindi;type:varchar(255);not null" json:"title_hindi"`
	Audit
}

func (MediaCategory) TableName() string {
	return "tbl_media_category"
}

func (m MediaCategory) PrimaryKey() uint64 { return m.ID }

func (m MediaCategory) UniqueName() string { return m.TitleEnglish }

func (m MediaCategory) ListRow() []any {
	return []any{m.TitleEnglish, m.TitleHindi}
}

var MediaCategoryDescriptor = Descriptor{
	Table:         MediaCategory{}.TableName(),
	Label:         "media category",
	NameColumn:    "title_english",
	SearchColumns: []string{"title_english", "title_hindi"},
	SortColumns:   []string{"id", "id", "title_english", "title_hindi", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
	},
}

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaModule is one gallery entry (a photo or a video) inside a media category.
type MediaModule struct {
	ID              uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	MediaCategoryID uint64 `gorm:"column:media_category_id;not null;index" json:"media_category_id"`
	TitleEnglish    string `gorm:"column:title_english;type:varchar(255);not null" json:"title_english"`
	TitleHindi      string `gorm:"column:title_hindi;type:varchar(255);not null" json:"title_hindi"`
	MediaType       string `gorm:"column:media_type;type:varchar(10);not null;default:'image'" json:"media_type"`
	UploadFile      string `gorm:"column:upload_file;type:varchar(255)" json:"upload_file"`
	VideoURL        string `gorm:"column:video_url;type:varchar(500)" json:"video_url"`
	Audit

	MediaCategory *MediaCategory `gorm:"foreignKey:MediaCategoryID" json:"media_category,omitempty"`
}

func (MediaModule) TableName() string {
	return "tbl_media_module"
}

func (m MediaModule) PrimaryKey() uint64 { return m.ID }

func (m MediaModule) ListRow() []any {
	categoryTitle := ""
	if m.MediaCategory != nil {
		categoryTitle = m.MediaCategory.TitleEnglish
	}
	return []any{categoryTitle, m.TitleEnglish, m.TitleHindi, m.MediaType, m.UploadFile}
}

func (m *MediaModule) FileFields() map[string]*string {
	return map[string]*string{"upload_file": &m.UploadFile}
}

var MediaModuleDescriptor = Descriptor{
	Table:         MediaModule{}.TableName(),
	Label:         "media",
	SearchColumns: []string{"title_english", "title_hindi"},
	SortColumns:   []string{"id", "id", "media_category_id", "title_english", "title_hindi", "media_type", "upload_file", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
		{Param: "media_category_id", Column: "media_category_id"},
		{Param: "media_type", Column: "media_type"},
	},
	Preloads: []string{"MediaCategory"},
}
