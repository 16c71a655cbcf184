package domain

const RoleAdmin = "admin"

type AdminUser struct {
	ID            uint64 `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	FullName      string `gorm:"column:full_name;type:varchar(255);not null" json:"full_name"`
	Email         string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Mobile        string `gorm:"column:mobile;type:varchar(20)" json:"mobile"`
	Password      string `gorm:"column:password;type:varchar(255);not null" json:"-"`
	DepartmentID  uint64 `gorm:"column:department_id;index" json:"department_id"`
	DesignationID uint64 `gorm:"column:designation_id;index" json:"designation_id"`
	Audit

	Department  *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Designation *Designation `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
}

func (AdminUser) TableName() string {
	return "tbl_admin_user"
}

func (u AdminUser) PrimaryKey() uint64 { return u.ID }

func (u AdminUser) UniqueName() string { return u.Email }

func (u AdminUser) ListRow() []any {
	department, designation := "", ""
	if u.Department != nil {
		department = u.Department.NameEnglish
	}
	if u.Designation != nil {
		designation = u.Designation.NameEnglish
	}
	return []any{u.FullName, u.Email, u.Mobile, department, designation}
}

var AdminUserDescriptor = Descriptor{
	Table:         AdminUser{}.TableName(),
	Label:         "user",
	NameColumn:    "email",
	SearchColumns: []string{"full_name", "email", "mobile"},
	SortColumns:   []string{"id", "id", "full_name", "email", "mobile", "department_id", "designation_id", "status"},
	Filters: []Filter{
		{Param: "status", Column: "status"},
		{Param: "department_id", Column: "department_id"},
		{Param: "designation_id", Column: "designation_id"},
	},
	Preloads: []string{"Department", "Designation"},
}
