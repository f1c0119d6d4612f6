package user

import "time"

type Role string

const (
	RoleMember  Role = "MEMBER"
	RoleTrainer Role = "TRAINER"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleTrainer
}

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Role         Role      `gorm:"type:text;not null"`
	PhoneNumber  string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	Name        string
	Role        Role
	PhoneNumber string
}

// UpdateInput carries the mutable profile fields. Role is fixed at
// registration and has no update path. Nil means "leave unchanged".
type UpdateInput struct {
	Email       *string
	Name        *string
	Password    *string
	PhoneNumber *string
}
