// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EntitySearch: Free-text search over the fiscal entity registry
//   - TaxSource: Revenue figures by tax ID, year and category
//   - HousingSource: Housing observations by territorial sub-code
//   - CatalogStore: Read-only locality catalog
//   - ResultStore: Persisted region -> locality -> StatRecord mapping
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CheckpointStore: Incremental per-locality run journal. Without it,
//     a crash mid-run loses the current run's progress (never prior runs').
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
