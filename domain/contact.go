package domain

// ContactMessage is a contact-form submission. Status "1" marks it unread.
type ContactMessage struct {
	ID         uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name       string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Mobile     string `gorm:"column:mobile;type:varchar(20)" json:"mobile"`
	Subject    string `gorm:"column:subject;type:varchar(255)" json:"subject"`
	Message    string `gorm:"column:message;type:text;not null" json:"message"`
	Attachment string `gorm:"column:attachment;type:varchar(255)" json:"attachment"`
	Audit
}

func (ContactMessage) TableName() string {
	return "tbl_contact_us"
}

func (m ContactMessage) PrimaryKey() uint64 { return m.ID }

func (m ContactMessage) ListRow() []any {
	return []any{m.Name, m.Email, m.Mobile, m.Subject, m.CreatedOn.Format("2006-01-02 15:04")}
}

func (m *ContactMessage) FileFields() map[string]*string {
	return map[string]*string{"attachment": &m.Attachment}
}

var ContactMessageDescriptor = Descriptor{
	Table:         ContactMessage{}.TableName(),
	Label:         "contact message",
	Bucket:        "contact",
	SearchColumns: []string{"name", "email", "mobile", "subject"},
	SortColumns:   []string{"id", "id", "name", "email", "mobile", "subject", "created_on", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
	},
}
