package diffcrypt

import "github.com/pkg/errors"

var (
	ErrInvalidMaxPairs    = errors.New("max pairs must be a positive integer")
	ErrInvalidTrials      = errors.New("trials must be a positive integer")
	ErrInvalidRange       = errors.New("invalid candidate range")
	ErrInvalidMessage     = errors.New("invalid message")
	ErrInvalidPair        = errors.New("invalid differential pair")
	ErrInvalidRoundParams = errors.New("invalid round parameters")
	ErrVerificationFailed = errors.New("some differentials did not produce collisions")
)
