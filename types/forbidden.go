package types

import "strings"

// ForbiddenPair is a prior-period (giver → receiver) pairing that must not recur.
//
// Matching is by exact string equality, after trimming surrounding whitespace,
// on the giver's name and email and on the receiver's name. The receiver's email
// is not part of the key.
type ForbiddenPair struct {
	GiverName    string `json:"giver_name"`
	GiverEmail   string `json:"giver_email"`
	ReceiverName string `json:"receiver_name"`
}

type giverKey struct {
	name  string
	email string
}

func keyOf(name, email string) giverKey {
	return giverKey{name: strings.TrimSpace(name), email: strings.TrimSpace(email)}
}

// ForbiddenSet indexes forbidden pairs by giver for constant-time lookups.
//
// A nil *ForbiddenSet is valid and forbids nothing. The set is read-only after
// construction and safe for concurrent use.
type ForbiddenSet struct {
	byGiver map[giverKey]map[string]struct{}
	size    int
}

// NewForbiddenSet builds a lookup index from a list of forbidden pairs.
//
// Fields are trimmed the same way rosters are, so untrimmed input still
// matches trimmed participants. Duplicate pairs collapse into one entry.
//
// Parameters:
//   - pairs: Forbidden pairs (may be nil)
//
// Returns:
//   - *ForbiddenSet: Index over the given pairs
func NewForbiddenSet(pairs []ForbiddenPair) *ForbiddenSet {
	fs := &ForbiddenSet{byGiver: make(map[giverKey]map[string]struct{}, len(pairs))}
	for _, p := range pairs {
		k := keyOf(p.GiverName, p.GiverEmail)
		receivers, ok := fs.byGiver[k]
		if !ok {
			receivers = make(map[string]struct{}, 1)
			fs.byGiver[k] = receivers
		}
		name := strings.TrimSpace(p.ReceiverName)
		if _, dup := receivers[name]; dup {
			continue
		}
		receivers[name] = struct{}{}
		fs.size++
	}

	return fs
}

// Forbids reports whether giver must not be paired with a receiver named receiverName.
func (fs *ForbiddenSet) Forbids(giver Participant, receiverName string) bool {
	if fs == nil {
		return false
	}
	receivers, ok := fs.byGiver[keyOf(giver.Name, giver.Email)]
	if !ok {
		return false
	}
	_, forbidden := receivers[strings.TrimSpace(receiverName)]

	return forbidden
}

// Len returns the number of distinct forbidden pairs in the set.
func (fs *ForbiddenSet) Len() int {
	if fs == nil {
		return 0
	}

	return fs.size
}
