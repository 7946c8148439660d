package customer

import (
	"errors"
	"strings"
)

var (
	ErrInvalidMemberID = errors.New("invalid member ID")
	ErrInvalidName     = errors.New("name must not be empty")
)

// MemberID is the customer's public loyalty identifier. It is opaque and
// case-sensitive; the only structural requirement is non-emptiness.
type MemberID struct {
	value string
}

func NewMemberID(s string) (MemberID, error) {
	if strings.TrimSpace(s) == "" {
		return MemberID{}, ErrInvalidMemberID
	}
	return MemberID{value: s}, nil
}

func (m MemberID) Value() string {
	return m.value
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Name{}, ErrInvalidName
	}
	return Name{value: s}, nil
}

func (n Name) Value() string {
	return n.value
}
