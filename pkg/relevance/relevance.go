// Package relevance ranks records against a free-text query so a bounded
// consumer gets the most informative subset of a batch.
package relevance

import (
	"sort"
	"strings"

	"github.com/go-errors/errors"

	"logsift/pkg/extract"
)

// actorKeywords mark queries that are about a specific actor's activity.
var actorKeywords = []string{"user", "username", "journey", "track"}

// Score computes the additive relevance of a record for a query. Error
// records always carry base weight so failures surface even for queries
// that never mention them.
func Score(r *extract.Record, query string) int {
	q := strings.ToLower(query)

	score := 0
	if strings.Contains(q, "error") && r.HasError {
		score += 10
	}
	if r.HasIdentifiers() {
		for _, kw := range actorKeywords {
			if strings.Contains(q, kw) {
				score += 5
				break
			}
		}
	}
	if strings.Contains(q, "api") && r.API != nil {
		score += 5
	}
	if r.HasError {
		score += 3
	}
	return score
}

// Select returns up to maxCount records ranked by descending relevance to
// the query. The sort is stable over the input order, so ties keep their
// original line order. A negative maxCount is a caller contract violation
// and is reported as an error; everything else degrades gracefully.
func Select(records []*extract.Record, query string, maxCount int) ([]*extract.Record, error) {
	if maxCount < 0 {
		return nil, errors.Errorf("max count must be non-negative, got %d", maxCount)
	}

	ranked := make([]*extract.Record, len(records))
	copy(ranked, records)

	scores := make(map[*extract.Record]int, len(ranked))
	for _, r := range ranked {
		scores[r] = Score(r, query)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	if len(ranked) > maxCount {
		ranked = ranked[:maxCount]
	}
	return ranked, nil
}
