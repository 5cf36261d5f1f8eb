package concierge

import (
	"context"
	"fmt"
	"strings"

	"concierge/models"
)

// SearchFAQ lowercases the query, splits it on whitespace, and returns the
// knowledge base entry with the largest keyword overlap. Ties go to the entry
// encountered first. Returns ErrNoFAQMatch when no entry overlaps at all.
func (s *DefaultService) SearchFAQ(ctx context.Context, query string) (*models.FAQ, error) {
	keywords := strings.Fields(strings.ToLower(query))
	if len(keywords) == 0 {
		return nil, ErrNoFAQMatch
	}

	candidates, err := s.FAQs.FindByKeywords(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("search FAQs: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoFAQMatch
	}

	querySet := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		querySet[kw] = true
	}

	best := 0
	maxScore := 0
	for i, faq := range candidates {
		score := 0
		for _, kw := range faq.Keywords {
			if querySet[kw] {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = i
		}
	}
	return &candidates[best], nil
}
