package strategy

import (
	"fmt"
	"strings"

	"github.com/AjayBarot7035/secret-santa/types"
)

// Strategy names accepted by ByName.
const (
	NameDerangement = "derangement"
	NameMatching    = "matching"
)

// ByName returns the built-in strategy registered under name.
//
// Parameters:
//   - name: NameDerangement or NameMatching, case-insensitive; empty selects NameDerangement
//
// Returns:
//   - types.AssignmentStrategy: The strategy
//   - error: Unknown name
func ByName(name string) (types.AssignmentStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameDerangement:
		return NewDerangement(), nil
	case NameMatching:
		return NewMatching(), nil
	default:
		return nil, fmt.Errorf("unknown assignment strategy %q", name)
	}
}
