package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedBodyRequest    = "failed to process body request"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MesaageUserNotAllowed       = "user not allowed"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("user not allowed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Actor is the identity the external identity context supplies with each
// request. A zero UserID means the caller is anonymous.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAnonymous() bool {
	return a.UserID == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanModerate is the single owner-or-admin capability check shared by
// comment edit/delete and workflow paths.
func (a Actor) CanModerate(ownerID string) bool {
	return a.IsAdmin() || (!a.IsAnonymous() && a.UserID == ownerID)
}

// StorageError surfaces a storage failure as ErrStorageUnavailable while
// keeping the driver error in the chain.
func StorageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// IsSerializationConflict reports whether err is a transaction conflict
// worth one retry with a fresh read. Unique violations are included:
// when two first-time toggles race, the loser's insert hits the unique
// index and the retry resolves it as a clean toggle-off.
func IsSerializationConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
