package roster

import "github.com/AjayBarot7035/secret-santa/types"

// Dedupe collapses duplicated participants, keeping the first occurrence.
//
// A participant is a duplicate when its folded name OR its folded email equals
// that of an entry already kept. Input order is preserved and the input slice
// is not modified.
//
// Parameters:
//   - participants: Participant list, possibly holding overlapping entries
//
// Returns:
//   - []types.Participant: New slice with duplicates removed
func Dedupe(participants []types.Participant) []types.Participant {
	names := make(map[string]struct{}, len(participants))
	emails := make(map[string]struct{}, len(participants))
	kept := make([]types.Participant, 0, len(participants))

	for _, p := range participants {
		nk, ek := p.NameKey(), p.EmailKey()
		if _, ok := names[nk]; ok {
			continue
		}
		if _, ok := emails[ek]; ok {
			continue
		}
		names[nk] = struct{}{}
		emails[ek] = struct{}{}
		kept = append(kept, p)
	}

	return kept
}

// Trim returns a copy of participants with surrounding whitespace removed
// from every name and email.
func Trim(participants []types.Participant) []types.Participant {
	out := make([]types.Participant, len(participants))
	for i, p := range participants {
		out[i] = p.Trimmed()
	}

	return out
}
