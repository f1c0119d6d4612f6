package roster

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrAlreadyManaged  = errors.New("member already in trainer's roster")
	ErrNotManaged      = errors.New("member not managed by this trainer")
)
