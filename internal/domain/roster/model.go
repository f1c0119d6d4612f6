package roster

import "time"

// Member is the role entity representing a user acting as a member. Its id
// space is distinct from the user id space.
type Member struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Trainer is the role entity representing a user acting as a trainer.
type Trainer struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TrainerMember is the management edge granting a trainer administration
// rights over a member. At most one edge exists per pair.
type TrainerMember struct {
	TrainerID   string    `gorm:"type:uuid;primaryKey"`
	MemberID    string    `gorm:"type:uuid;primaryKey"`
	PTStartDate time.Time `gorm:"not null"`
}

// ManagedMember is a member row joined with its user profile, as seen from
// the managing trainer's side.
type ManagedMember struct {
	MemberID    string
	UserID      string
	Username    string
	Name        string
	Email       string
	PhoneNumber string
	PTStartDate time.Time
}

// RelatedTrainer is a trainer row joined with its user profile, as seen from
// a managed member's side.
type RelatedTrainer struct {
	TrainerID   string
	UserID      string
	Username    string
	Name        string
	Email       string
	PhoneNumber string
	PTStartDate time.Time
}
