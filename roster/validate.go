package roster

import (
	"strconv"
	"strings"

	"github.com/AjayBarot7035/secret-santa/types"
)

// MinParticipants is the smallest group for which a derangement exists.
const MinParticipants = 2

// Validate checks a participant list and returns the first failing rule.
//
// Rules, in order:
//  1. The list is not empty
//  2. The list holds at least MinParticipants entries
//  3. Every participant has a non-blank name, then a non-blank email
//  4. No two participants share a folded name or a folded email
//
// Parameters:
//   - participants: Raw participant list
//
// Returns:
//   - error: *types.ValidationError describing the failure, nil if valid
func Validate(participants []types.Participant) error {
	if len(participants) == 0 {
		return &types.ValidationError{Code: types.CodeEmptyList}
	}

	if len(participants) < MinParticipants {
		return &types.ValidationError{Code: types.CodeInsufficientParticipants}
	}

	for _, p := range participants {
		if strings.TrimSpace(p.Name) == "" {
			return &types.ValidationError{Code: types.CodeMissingField, Field: "name"}
		}
		if strings.TrimSpace(p.Email) == "" {
			return &types.ValidationError{Code: types.CodeMissingField, Field: "email"}
		}
	}

	if dups := Duplicates(participants); len(dups) > 0 {
		return &types.ValidationError{Code: types.CodeDuplicateParticipant, Values: dups}
	}

	return nil
}

// Duplicates lists every duplicated folded name and folded email.
//
// Each duplicated value is reported once, names first, in the order the
// duplicate was first detected.
//
// Returns:
//   - []string: Entries formatted as `name "<key>"` or `email "<key>"` (nil if none)
func Duplicates(participants []types.Participant) []string {
	names := collectDuplicates(participants, types.Participant.NameKey)
	emails := collectDuplicates(participants, types.Participant.EmailKey)
	if len(names) == 0 && len(emails) == 0 {
		return nil
	}

	out := make([]string, 0, len(names)+len(emails))
	for _, n := range names {
		out = append(out, "name "+strconv.Quote(n))
	}
	for _, e := range emails {
		out = append(out, "email "+strconv.Quote(e))
	}

	return out
}

func collectDuplicates(participants []types.Participant, key func(types.Participant) string) []string {
	seen := make(map[string]int, len(participants))
	var dups []string
	for _, p := range participants {
		k := key(p)
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}

	return dups
}
