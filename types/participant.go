package types

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Participant is a member of the group taking part in one generation request.
type Participant struct {
	// Name is the display name. Must be non-empty after trimming.
	Name string `json:"name" yaml:"name"`

	// Email is the contact address. Must be non-empty after trimming.
	Email string `json:"email" yaml:"email"`
}

var folder = cases.Fold()

// FoldKey returns the identity form of s: trimmed, NFC-normalized and case-folded.
//
// Two values with equal fold keys refer to the same participant.
//
// Parameters:
//   - s: Raw name or email
//
// Returns:
//   - string: Canonical identity key ("" for blank input)
func FoldKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	return folder.String(norm.NFC.String(s))
}

// NameKey returns the case-insensitive identity key of the participant's name.
func (p Participant) NameKey() string {
	return FoldKey(p.Name)
}

// EmailKey returns the case-insensitive identity key of the participant's email.
func (p Participant) EmailKey() string {
	return FoldKey(p.Email)
}

// Trimmed returns a copy with surrounding whitespace removed from name and email.
func (p Participant) Trimmed() Participant {
	return Participant{
		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
	}
}

// SameIdentity reports whether p and q share a folded name or a folded email.
func (p Participant) SameIdentity(q Participant) bool {
	return p.NameKey() == q.NameKey() || p.EmailKey() == q.EmailKey()
}
