package services

import (
	"context"
	"strings"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driving"
	"github.com/civita-labs/fiscara-cli/internal/logger"
	"github.com/civita-labs/fiscara-cli/internal/normalise"
)

// Ensure ResolverService implements the interface.
var _ driving.Resolver = (*ResolverService)(nil)

// DefaultSearchLimit is the per-query result count requested from the
// registry when none is configured.
const DefaultSearchLimit = 20

// ResolverService resolves a catalog locality to its canonical fiscal
// entity by running query strategies against the registry in order and
// ranking the candidates each returns.
type ResolverService struct {
	search driven.EntitySearch
	limit  int
}

// NewResolverService creates a resolver over the given registry search.
// limit caps results per query; zero means DefaultSearchLimit.
func NewResolverService(search driven.EntitySearch, limit int) *ResolverService {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &ResolverService{search: search, limit: limit}
}

// Resolve tries the query strategies for ref in order and returns the
// first acceptable match. The search is greedy: once a query produces a
// winner, later strategies are skipped. A registry failure on one query
// is a soft failure for that strategy only.
func (s *ResolverService) Resolve(ctx context.Context, ref domain.LocalityRef) (*domain.ResolvedMatch, error) {
	logger.Section("Resolve " + ref.Region + " / " + ref.Name)

	for i, query := range QueryStrategies(ref) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates, err := s.search.Search(ctx, query, s.limit)
		if err != nil {
			logger.Warn("strategy %d %q: %v", i+1, query, err)
			continue
		}
		logger.Debug("strategy %d %q: %d candidates", i+1, query, len(candidates))

		if winner := pickCandidate(ref, candidates); winner != nil {
			logger.Info("matched %q via strategy %d", winner.DisplayName, i+1)
			return &domain.ResolvedMatch{
				TaxID:        winner.TaxID,
				SubCode:      winner.SubCode,
				DisplayName:  winner.DisplayName,
				Region:       winner.Region,
				LocalityName: winner.LocalityName,
			}, nil
		}
	}

	// No generic fallback to "first entity in region": a wrong match
	// corrupts downstream statistics silently, a miss is retryable.
	return nil, domain.ErrNoMatch
}

// rankRule accepts or rejects one candidate under one priority rule.
type rankRule func(ref domain.LocalityRef, c domain.CandidateEntity, cls domain.Classification) bool

// rankRules in priority order. The first rule with a hit wins; ties
// within a rule are broken by registry order.
var rankRules = []rankRule{
	// 1. office, sub-locality equals target name
	func(ref domain.LocalityRef, c domain.CandidateEntity, cls domain.Classification) bool {
		return cls.IsOffice && normalise.HyphenSpaceEqual(c.LocalityName, ref.Name)
	},
	// 2. office, sub-locality contains target name
	func(ref domain.LocalityRef, c domain.CandidateEntity, cls domain.Classification) bool {
		return cls.IsOffice && containsFold(c.LocalityName, ref.Name)
	},
	// 3. office, display name contains target name
	func(ref domain.LocalityRef, c domain.CandidateEntity, cls domain.Classification) bool {
		return cls.IsOffice && containsFold(c.DisplayName, ref.Name)
	},
	// 4. any classification, sub-locality equals target name
	func(ref domain.LocalityRef, c domain.CandidateEntity, _ domain.Classification) bool {
		return normalise.HyphenSpaceEqual(c.LocalityName, ref.Name)
	},
	// 5. any classification, sub-locality or display name contains target
	func(ref domain.LocalityRef, c domain.CandidateEntity, _ domain.Classification) bool {
		return containsFold(c.LocalityName, ref.Name) || containsFold(c.DisplayName, ref.Name)
	},
}

// pickCandidate filters candidates to the target region and non-excluded
// classifications, then applies the ranking rules. Returns nil when the
// filtered set has no acceptable candidate.
func pickCandidate(ref domain.LocalityRef, candidates []domain.CandidateEntity) *domain.CandidateEntity {
	type classified struct {
		candidate domain.CandidateEntity
		cls       domain.Classification
	}

	filtered := make([]classified, 0, len(candidates))
	for _, c := range candidates {
		if normalise.Fold(c.Region) != normalise.Fold(ref.Region) {
			continue
		}
		cls := Classify(c)
		if cls.IsExcluded {
			continue
		}
		filtered = append(filtered, classified{candidate: c, cls: cls})
	}

	for _, rule := range rankRules {
		for i := range filtered {
			if rule(ref, filtered[i].candidate, filtered[i].cls) {
				return &filtered[i].candidate
			}
		}
	}
	return nil
}

// containsFold reports whether haystack contains needle after folding
// case, diacritics and hyphen/space spelling.
func containsFold(haystack, needle string) bool {
	h := normalise.Fold(normalise.HyphensToSpaces(haystack))
	n := normalise.Fold(normalise.HyphensToSpaces(needle))
	return n != "" && strings.Contains(h, n)
}
