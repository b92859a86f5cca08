package domain

import "github.com/shelfmarkapp/shelfmark-server/internal/date"

// Identity is a library member account. Accounts are minted on login or
// registration and discarded on logout together with their loans; they are
// not real authenticated principals.
type Identity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	MemberSince date.Date `json:"member_since"`
}
