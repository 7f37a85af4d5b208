// Package domain defines the core business entities for Fiscara.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - LocalityRef: One entry in the authoritative locality catalog
//   - CandidateEntity: A search hit from the fiscal entity registry
//   - ResolvedMatch: The single winning candidate for a locality
//   - StatRecord: The persisted statistics for one locality
//   - ResultSet: The region -> locality -> StatRecord mapping
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
