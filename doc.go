// Package secretsanta generates secret santa assignments.
//
// Every participant is paired with exactly one other participant as giver, so
// that nobody draws themselves, nobody repeats last period's pairing and
// everybody receives exactly one gift.
//
// # Quick Start
//
//	import secretsanta "github.com/AjayBarot7035/secret-santa"
//
//	participants := []secretsanta.Participant{
//	    {Name: "John Doe", Email: "john.doe@example.com"},
//	    {Name: "Jane Smith", Email: "jane.smith@example.com"},
//	    {Name: "Bob Johnson", Email: "bob.johnson@example.com"},
//	}
//	previous := []secretsanta.ForbiddenPair{
//	    {GiverName: "John Doe", GiverEmail: "john.doe@example.com", ReceiverName: "Jane Smith"},
//	}
//
//	res := secretsanta.Generate(participants, previous)
//	if !res.Success {
//	    log.Fatal(res.ErrorMessage())
//	}
//
// # Key Features
//
//   - Validation: empty lists, single participants, blank fields and duplicates are rejected
//   - History Avoidance: pairings from the previous period are never repeated
//   - Bounded Search: at most MaxAttempts randomized attempts per request
//   - Pluggable Strategies: the classic shuffle-rotate-repair heuristic or a complete matching solver
//   - Deterministic Mode: WithSeed reproduces results for audits and tests
//
// # Architecture
//
// The core (packages roster and strategy plus Generator) is pure computation.
// Boundary packages wrap it:
//
//	httpapi ─┐
//	         ├─► Generator ─► roster (validate, dedupe) ─► strategy (attempts)
//	worker ──┘
//	   │
//	   └─► results (NATS KV), history (SQLite)
//
// See cmd/secret-santa for the service binary and examples/ for library usage.
package secretsanta
