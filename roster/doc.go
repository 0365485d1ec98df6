// Package roster validates and normalizes participant lists before generation.
//
// Two policies exist for duplicated participants:
//
//   - Validate rejects any list where two participants share a folded name or a
//     folded email, listing every duplicated value in the error.
//   - Dedupe collapses duplicates, keeping the first occurrence in input order.
//
// The Generator picks exactly one of them per instance; see secretsanta.DuplicatePolicy.
package roster
