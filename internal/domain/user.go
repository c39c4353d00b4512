package domain

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
	UserRejected UserStatus = "rejected"
)

// User is an account of the identity system. Only approved users may act as guests.
type User struct {
	Base
	Email        string     `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Name         string     `json:"name"`
	Role         UserRole   `json:"role" gorm:"type:varchar(16);not null;default:'user'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
}
