package entity

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants
const (
	RoleIDAdmin         = 1
	RoleIDDoctor        = 2
	RoleIDClinicalStaff = 3
	RoleIDStudent       = 4
	RoleIDAcademicStaff = 5
)

// RoleNames constants
const (
	RoleAdmin         = "admin"
	RoleDoctor        = "doctor"
	RoleClinicalStaff = "clinical_staff"
	RoleStudent       = "student"
	RoleAcademicStaff = "academic_staff"
)

// RoleNameByID maps a role ID to its canonical name.
func RoleNameByID(roleID int) string {
	switch roleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDDoctor:
		return RoleDoctor
	case RoleIDClinicalStaff:
		return RoleClinicalStaff
	case RoleIDStudent:
		return RoleStudent
	case RoleIDAcademicStaff:
		return RoleAcademicStaff
	default:
		return ""
	}
}

// IsPatientRole reports whether the role books appointments as a patient.
// Students and academic staff are both patients of the university clinic.
func IsPatientRole(roleID int) bool {
	return roleID == RoleIDStudent || roleID == RoleIDAcademicStaff
}

// StaffTypeForRole maps a role to the staff type used by the academic
// holiday calendar.
func StaffTypeForRole(roleID int) string {
	switch roleID {
	case RoleIDStudent:
		return StaffTypeStudent
	case RoleIDAcademicStaff:
		return StaffTypeAcademic
	case RoleIDDoctor, RoleIDClinicalStaff:
		return StaffTypeClinical
	default:
		return ""
	}
}
