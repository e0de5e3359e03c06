package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidCredentials      = errors.New("invalid username or password")
	ErrOldPasswordMismatch     = errors.New("old password does not match")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrForbidden        = errors.New("operation is not allowed for the caller")
	ErrNameAlreadyTaken = errors.New("name is already taken")

	ErrInvalidOrganizer = errors.New("organizer does not exist or is not an organizer")
	ErrCapacityTooSmall = errors.New("location capacity is smaller than the number of tickets sold")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
