package services

import (
	"context"
	"math"
	"sync"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driving"
	"github.com/civita-labs/fiscara-cli/internal/logger"
)

// Ensure AggregatorService implements the interface.
var _ driving.Aggregator = (*AggregatorService)(nil)

// DefaultTaxYears is the year sequence consulted for the revenue figure,
// newest first.
var DefaultTaxYears = []int{2024, 2023, 2022, 2021}

// DefaultRevenueCategory is the budget classification code of the
// revenue line extracted from the tax statistics.
const DefaultRevenueCategory = "070202"

// AggregatorService fetches the two statistics for a resolved entity.
// The tax and housing fetches share no state and run concurrently; a
// failure in one never blocks or invalidates the other.
type AggregatorService struct {
	tax      driven.TaxSource
	housing  driven.HousingSource
	years    []int
	category string
}

// NewAggregatorService creates an aggregator. Nil years or empty
// category fall back to the defaults.
func NewAggregatorService(tax driven.TaxSource, housing driven.HousingSource, years []int, category string) *AggregatorService {
	if len(years) == 0 {
		years = DefaultTaxYears
	}
	if category == "" {
		category = DefaultRevenueCategory
	}
	return &AggregatorService{tax: tax, housing: housing, years: years, category: category}
}

// Aggregate combines the tax and housing figures for match. Every
// per-year and per-fetch failure is swallowed as "no data from this
// attempt"; the returned error is domain.ErrNoStatistics only when both
// figures came back empty.
func (s *AggregatorService) Aggregate(ctx context.Context, match *domain.ResolvedMatch) (domain.StatRecord, error) {
	if match == nil {
		return domain.StatRecord{}, domain.ErrInvalidInput
	}

	var rec domain.StatRecord
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		rec.Tax, rec.TaxYear = s.fetchTax(ctx, match.TaxID)
	}()
	go func() {
		defer wg.Done()
		rec.Houses, rec.HousesYear = s.fetchHouses(ctx, match.SubCode)
	}()
	wg.Wait()

	if !rec.HasData() {
		return rec, domain.ErrNoStatistics
	}
	return rec, nil
}

// fetchTax walks the configured years newest first and stops at the
// first strictly positive amount for the configured category.
// Newest-positive-wins avoids double counting across years.
func (s *AggregatorService) fetchTax(ctx context.Context, taxID string) (float64, *int) {
	for _, year := range s.years {
		rows, err := s.tax.Revenue(ctx, taxID, year)
		if err != nil {
			logger.Warn("tax %s year %d: %v", taxID, year, err)
			continue
		}
		for _, row := range rows {
			if row.Code == s.category && row.Amount > 0 {
				y := year
				return round2(row.Amount), &y
			}
		}
	}
	return 0, nil
}

// fetchHouses picks the observation with the numerically largest year.
func (s *AggregatorService) fetchHouses(ctx context.Context, subCode string) (int, *int) {
	if subCode == "" {
		return 0, nil
	}

	observations, err := s.housing.Observations(ctx, subCode)
	if err != nil {
		logger.Warn("housing %s: %v", subCode, err)
		return 0, nil
	}

	best := -1
	houses := 0
	for _, obs := range observations {
		if obs.Year > best {
			best = obs.Year
			houses = obs.Value
		}
	}
	if best < 0 {
		return 0, nil
	}
	// A stored count is never negative; a bad upstream row reads as
	// "no usable figure for that year".
	if houses < 0 {
		houses = 0
	}
	year := best
	return houses, &year
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
