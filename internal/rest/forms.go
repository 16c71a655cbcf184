package rest

import (
	"encoding/json"
	"strings"

	"krishiCMS/domain"
	"krishiCMS/pkg/utils"
	"krishiCMS/pkg/validation"
)

// StatusField is embedded by every form. An empty value keeps the stored status.
type StatusField struct {
	Status string `json:"status" form:"status" validate:"omitempty,oneof=0 1"`
}

func (s StatusField) applyTo(a *domain.Audit) {
	if s.Status != "" {
		a.Status = domain.Flag(s.Status)
	}
}

func (s *StatusField) fillFrom(a domain.Audit) {
	s.Status = string(a.Status)
}

type CategoryForm struct {
	TitleEnglish string `json:"title_english" form:"title_english" validate:"required,max=255,english"`
	TitleHindi   string `json:"title_hindi" form:"title_hindi" validate:"required,max=255,hindi"`
	StatusField
}

func (f *CategoryForm) fill(c *domain.Category) {
	f.TitleEnglish, f.TitleHindi = c.TitleEnglish, c.TitleHindi
	f.fillFrom(c.Audit)
}

func ApplyCategory(f *CategoryForm, c *domain.Category) error {
	c.TitleEnglish = strings.TrimSpace(f.TitleEnglish)
	c.TitleHindi = strings.TrimSpace(f.TitleHindi)
	f.applyTo(&c.Audit)
	return nil
}

type SKUForm struct {
	Quantity    int    `json:"quantity" form:"quantity" validate:"required,gt=0"`
	UnitEnglish string `json:"unit_english" form:"unit_english" validate:"required,max=50,english"`
	UnitHindi   string `json:"unit_hindi" form:"unit_hindi" validate:"required,max=50,hindi"`
	StatusField
}

func (f *SKUForm) fill(s *domain.SKU) {
	f.Quantity = s.Quantity
	f.UnitEnglish, f.UnitHindi = s.UnitEnglish, s.UnitHindi
	f.fillFrom(s.Audit)
}

func ApplySKU(f *SKUForm, s *domain.SKU) error {
	s.Quantity = f.Quantity
	s.UnitEnglish = strings.TrimSpace(f.UnitEnglish)
	s.UnitHindi = strings.TrimSpace(f.UnitHindi)
	f.applyTo(&s.Audit)
	return nil
}

type ProductInnovationForm struct {
	TitleEnglish       string `json:"title_english" validate:"required,max=255,english"`
	TitleHindi         string `json:"title_hindi" validate:"required,max=255,hindi"`
	DescriptionEnglish string `json:"description_english"`
	DescriptionHindi   string `json:"description_hindi"`
}

type ProductForm struct {
	CategoryID         uint64   `json:"category_id" form:"category_id" validate:"required"`
	NameEnglish        string   `json:"name_english" form:"name_english" validate:"required,max=255,english"`
	NameHindi          string   `json:"name_hindi" form:"name_hindi" validate:"required,max=255,hindi"`
	DescriptionEnglish string   `json:"description_english" form:"description_english"`
	DescriptionHindi   string   `json:"description_hindi" form:"description_hindi"`
	SKUIDs             []string `json:"sku_id" form:"sku_id" validate:"omitempty,dive,numeric"`
	// Innovations arrive as a JSON array; multipart clients send it as a
	// string in InnovationsJSON.
	Innovations     []ProductInnovationForm `json:"innovations" form:"-" validate:"omitempty,dive"`
	InnovationsJSON string                  `json:"-" form:"innovations"`
	StatusField
}

func (f *ProductForm) prepare() error {
	if f.InnovationsJSON == "" || len(f.Innovations) > 0 {
		return nil
	}
	if err := json.Unmarshal([]byte(f.InnovationsJSON), &f.Innovations); err != nil {
		return validation.Errors{{Field: "innovations", Tag: "json", Message: "innovations must be a JSON array"}}
	}
	return nil
}

func (f *ProductForm) fill(p *domain.Product) {
	f.CategoryID = p.CategoryID
	f.NameEnglish, f.NameHindi = p.NameEnglish, p.NameHindi
	f.DescriptionEnglish, f.DescriptionHindi = p.DescriptionEnglish, p.DescriptionHindi
	f.SKUIDs = append([]string(nil), p.SKUIDs...)
	f.fillFrom(p.Audit)
}

// ApplyProduct copies the form onto the product. Innovations are only taken
// on create; afterwards they are managed through their own endpoints.
func ApplyProduct(f *ProductForm, p *domain.Product) error {
	p.CategoryID = f.CategoryID
	p.NameEnglish = strings.TrimSpace(f.NameEnglish)
	p.NameHindi = strings.TrimSpace(f.NameHindi)
	p.DescriptionEnglish = f.DescriptionEnglish
	p.DescriptionHindi = f.DescriptionHindi
	p.SKUIDs = domain.IDList(f.SKUIDs)
	f.applyTo(&p.Audit)

	if p.ID == 0 {
		p.Innovations = make([]domain.Innovation, 0, len(f.Innovations))
		for _, in := range f.Innovations {
			p.Innovations = append(p.Innovations, domain.Innovation{
				TitleEnglish:       strings.TrimSpace(in.TitleEnglish),
				TitleHindi:         strings.TrimSpace(in.TitleHindi),
				DescriptionEnglish: in.DescriptionEnglish,
				DescriptionHindi:   in.DescriptionHindi,
			})
		}
	}
	return nil
}

type InnovationForm struct {
	ProductID          uint64 `json:"product_id" form:"product_id" validate:"required"`
	TitleEnglish       string `json:"title_english" form:"title_english" validate:"required,max=255,english"`
	TitleHindi         string `json:"title_hindi" form:"title_hindi" validate:"required,max=255,hindi"`
	DescriptionEnglish string `json:"description_english" form:"description_english"`
	DescriptionHindi   string `json:"description_hindi" form:"description_hindi"`
	StatusField
}

func (f *InnovationForm) fill(i *domain.Innovation) {
	f.ProductID = i.ProductID
	f.TitleEnglish, f.TitleHindi = i.TitleEnglish, i.TitleHindi
	f.DescriptionEnglish, f.DescriptionHindi = i.DescriptionEnglish, i.DescriptionHindi
	f.fillFrom(i.Audit)
}

func ApplyInnovation(f *InnovationForm, i *domain.Innovation) error {
	i.ProductID = f.ProductID
	i.TitleEnglish = strings.TrimSpace(f.TitleEnglish)
	i.TitleHindi = strings.TrimSpace(f.TitleHindi)
	i.DescriptionEnglish = f.DescriptionEnglish
	i.DescriptionHindi = f.DescriptionHindi
	f.applyTo(&i.Audit)
	return nil
}

type MediaCategoryForm struct {
	TitleEnglish string `json:"title_english" form:"title_english" validate:"required,max=255,english"`
	TitleHindi   string `json:"title_hindi" form:"title_hindi" validate:"required,max=255,hindi"`
	StatusField
}

func (f *MediaCategoryForm) fill(m *domain.MediaCategory) {
	f.TitleEnglish, f.TitleHindi = m.TitleEnglish, m.TitleHindi
	f.fillFrom(m.Audit)
}

func ApplyMediaCategory(f *MediaCategoryForm, m *domain.MediaCategory) error {
	m.TitleEnglish = strings.TrimSpace(f.TitleEnglish)
	m.TitleHindi = strings.TrimSpace(f.TitleHindi)
	f.applyTo(&m.Audit)
	return nil
}

type MediaForm struct {
	MediaCategoryID uint64 `json:"media_category_id" form:"media_category_id" validate:"required"`
	TitleEnglish    string `json:"title_english" form:"title_english" validate:"required,max=255,english"`
	TitleHindi      string `json:"title_hindi" form:"title_hindi" validate:"required,max=255,hindi"`
	MediaType       string `json:"media_type" form:"media_type" validate:"required,oneof=image video"`
	VideoURL        string `json:"video_url" form:"video_url" validate:"omitempty,url,max=500"`
	StatusField
}

func (f *MediaForm) fill(m *domain.MediaModule) {
	f.MediaCategoryID = m.MediaCategoryID
	f.TitleEnglish, f.TitleHindi = m.TitleEnglish, m.TitleHindi
	f.MediaType = m.MediaType
	f.VideoURL = m.VideoURL
	f.fillFrom(m.Audit)
}

func ApplyMedia(f *MediaForm, m *domain.MediaModule) error {
	m.MediaCategoryID = f.MediaCategoryID
	m.TitleEnglish = strings.TrimSpace(f.TitleEnglish)
	m.TitleHindi = strings.TrimSpace(f.TitleHindi)
	m.MediaType = f.MediaType
	m.VideoURL = f.VideoURL
	f.applyTo(&m.Audit)
	return nil
}

type BannerForm struct {
	TitleEnglish    string `json:"title_english" form:"title_english" validate:"required,max=255,english"`
	TitleHindi      string `json:"title_hindi" form:"title_hindi" validate:"required,max=255,hindi"`
	SubtitleEnglish string `json:"subtitle_english" form:"subtitle_english" validate:"max=500"`
	SubtitleHindi   string `json:"subtitle_hindi" form:"subtitle_hindi" validate:"max=500"`
	LinkURL         string `json:"link_url" form:"link_url" validate:"omitempty,url,max=500"`
	SortOrder       int    `json:"sort_order" form:"sort_order" validate:"gte=0"`
	StatusField
}

func (f *BannerForm) fill(b *domain.Banner) {
	f.TitleEnglish, f.TitleHindi = b.TitleEnglish, b.TitleHindi
	f.SubtitleEnglish, f.SubtitleHindi = b.SubtitleEnglish, b.SubtitleHindi
	f.LinkURL = b.LinkURL
	f.SortOrder = b.SortOrder
	f.fillFrom(b.Audit)
}

func ApplyBanner(f *BannerForm, b *domain.Banner) error {
	b.TitleEnglish = strings.TrimSpace(f.TitleEnglish)
	b.TitleHindi = strings.TrimSpace(f.TitleHindi)
	b.SubtitleEnglish = f.SubtitleEnglish
	b.SubtitleHindi = f.SubtitleHindi
	b.LinkURL = f.LinkURL
	b.SortOrder = f.SortOrder
	f.applyTo(&b.Audit)
	return nil
}

type OrgUnitForm struct {
	NameEnglish string `json:"name_english" form:"name_english" validate:"required,max=255,english"`
	NameHindi   string `json:"name_hindi" form:"name_hindi" validate:"required,max=255,hindi"`
	StatusField
}

type DepartmentForm struct{ OrgUnitForm }

type DesignationForm struct{ OrgUnitForm }

func (f *DepartmentForm) fill(d *domain.Department) {
	f.NameEnglish, f.NameHindi = d.NameEnglish, d.NameHindi
	f.fillFrom(d.Audit)
}

func ApplyDepartment(f *DepartmentForm, d *domain.Department) error {
	d.NameEnglish = strings.TrimSpace(f.NameEnglish)
	d.NameHindi = strings.TrimSpace(f.NameHindi)
	f.applyTo(&d.Audit)
	return nil
}

func (f *DesignationForm) fill(d *domain.Designation) {
	f.NameEnglish, f.NameHindi = d.NameEnglish, d.NameHindi
	f.fillFrom(d.Audit)
}

func ApplyDesignation(f *DesignationForm, d *domain.Designation) error {
	d.NameEnglish = strings.TrimSpace(f.NameEnglish)
	d.NameHindi = strings.TrimSpace(f.NameHindi)
	f.applyTo(&d.Audit)
	return nil
}

type UserForm struct {
	FullName      string `json:"full_name" form:"full_name" validate:"required,max=255"`
	Email         string `json:"email" form:"email" validate:"required,email,max=255"`
	Mobile        string `json:"mobile" form:"mobile" validate:"omitempty,numeric,min=10,max=15"`
	Password      string `json:"password" form:"password" validate:"omitempty,min=6,max=72"`
	DepartmentID  uint64 `json:"department_id" form:"department_id"`
	DesignationID uint64 `json:"designation_id" form:"designation_id"`
	StatusField
}

// fill leaves Password empty so an update without one keeps the stored hash.
func (f *UserForm) fill(u *domain.AdminUser) {
	f.FullName, f.Email, f.Mobile = u.FullName, u.Email, u.Mobile
	f.DepartmentID, f.DesignationID = u.DepartmentID, u.DesignationID
	f.fillFrom(u.Audit)
}

// ApplyUser requires a password for new users and keeps the stored hash
// when an update leaves it empty.
func ApplyUser(f *UserForm, u *domain.AdminUser) error {
	if u.ID == 0 && f.Password == "" {
		return validation.Errors{{Field: "password", Tag: "required", Message: "password is required"}}
	}

	u.FullName = strings.TrimSpace(f.FullName)
	u.Email = strings.TrimSpace(f.Email)
	u.Mobile = f.Mobile
	u.DepartmentID = f.DepartmentID
	u.DesignationID = f.DesignationID
	f.applyTo(&u.Audit)

	if f.Password != "" {
		hash, err := utils.HashPassword(f.Password)
		if err != nil {
			return err
		}
		u.Password = string(hash)
	}
	return nil
}

type ContactForm struct {
	Name    string `json:"name" form:"name" validate:"required,max=255"`
	Email   string `json:"email" form:"email" validate:"required,email,max=255"`
	Mobile  string `json:"mobile" form:"mobile" validate:"omitempty,max=20"`
	Subject string `json:"subject" form:"subject" validate:"max=255"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

func ApplyContact(f *ContactForm, m *domain.ContactMessage) error {
	m.Name = f.Name
	m.Email = f.Email
	m.Mobile = f.Mobile
	m.Subject = f.Subject
	m.Message = f.Message
	return nil
}
