// Package file provides a TOML file-backed configuration store.
//
// Configuration keys used by Fiscara:
//
//	registry.base_url     — entity registry endpoint
//	statistics.base_url   — statistics source endpoint
//	statistics.dataset    — housing dataset ID (default LOC103B)
//	batch.tax_years       — year sequence for the revenue figure
//	batch.revenue_category— budget classification code
//	batch.search_limit    — results requested per query
//	batch.pace_delay_ms   — flat inter-locality delay
//	paths.catalog         — locality catalog JSON file
//	paths.results         — result store JSON file
package file
