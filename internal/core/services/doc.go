// Package services implements the core business logic for Fiscara.
//
// Services implement the driving ports and depend only on domain types
// and driven port interfaces:
//
//   - ResolverService: strategy-ordered entity resolution
//   - AggregatorService: concurrent tax + housing statistics fetch
//   - BatchOrchestrator: paced, resumable catalog-wide runs
//
// The query strategy generator and the entity classifier are plain
// functions in this package so their ordering and keyword tables can be
// tested independently of the resolver.
//
// # Import Rules
//
//   - Can Import: domain, ports, normalise, logger
//   - Cannot Import: Any adapter package
package services
