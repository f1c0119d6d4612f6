package schedule

import "time"

// Status is the schedule lifecycle state. Exactly these five values exist.
type Status string

const (
	StatusMemberProposed  Status = "MEMBER_PROPOSED"
	StatusTrainerProposed Status = "TRAINER_PROPOSED"
	StatusScheduled       Status = "SCHEDULED"
	StatusRejected        Status = "REJECTED"
	StatusCanceled        Status = "CANCELED"
)

// Party identifies which side of the session is acting. It is resolved once
// at the authorization boundary and threaded through every operation; the
// state machine never re-derives it.
type Party string

const (
	PartyMember  Party = "MEMBER"
	PartyTrainer Party = "TRAINER"
)

// ProposedStatus is the initial state for a schedule this party creates.
func (p Party) ProposedStatus() Status {
	if p == PartyTrainer {
		return StatusTrainerProposed
	}
	return StatusMemberProposed
}

// CounterProposedStatus is the only state this party may accept or reject:
// the proposal made by the other side.
func (p Party) CounterProposedStatus() Status {
	if p == PartyTrainer {
		return StatusMemberProposed
	}
	return StatusTrainerProposed
}

// Schedule is one proposed or confirmed training session between a member
// and a trainer.
type Schedule struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	Date           time.Time `gorm:"not null;index:idx_schedules_member_date,priority:2;index:idx_schedules_trainer_date,priority:2"`
	Location       string    `gorm:"not null"`
	Status         Status    `gorm:"type:text;not null"`
	TrainingTarget *string
	MemberID       string    `gorm:"type:uuid;not null;index:idx_schedules_member_date,priority:1"`
	TrainerID      string    `gorm:"type:uuid;not null;index:idx_schedules_trainer_date,priority:1"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// ownerID returns the schedule participant id for the given party.
func (s *Schedule) ownerID(p Party) string {
	if p == PartyTrainer {
		return s.TrainerID
	}
	return s.MemberID
}

// ProposeInput creates a schedule. Actor is the proposing side's own entity
// id; Counterparty is the other side's entity id.
type ProposeInput struct {
	Party          Party
	ActorID        string
	CounterpartyID string
	Date           time.Time
	Location       string
	TrainingTarget string
}

// CancelOutcome reports how a cancel resolved: a confirmed session is
// soft-canceled and retained, an unconfirmed or rejected one is removed.
type CancelOutcome struct {
	Schedule Schedule
	Deleted  bool
}
