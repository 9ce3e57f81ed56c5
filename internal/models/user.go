package models

// UserRole distinguishes advisers (staff) from group members (students).
type UserRole string

const (
	RoleStaff   UserRole = "staff"
	RoleStudent UserRole = "student"
)

// User represents a workspace member. Accounts are provisioned by the
// external identity provider; this table mirrors what the API needs for
// display names and authorship checks.
type User struct {
	ID       string   `json:"id" gorm:"primaryKey"`
	FullName string   `json:"full_name" gorm:"column:full_name;not null"`
	Role     UserRole `json:"role" gorm:"not null;default:'student'"`
	GroupID  string   `json:"group_id" gorm:"column:group_id;index"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
