package destinations

import (
	"context"
	"sort"
	"strings"
)

// Score weights: tag overlap dominates, rating is a mild tiebreaker so
// a well-rated but unrelated place cannot outrank a real match.
const (
	overlapWeight = 0.7
	ratingWeight  = 0.3
)

// Recommend scores the catalogue against the visitor's interests using
// Jaccard similarity over tag sets blended with the destination rating,
// and returns the best matches. Destinations sharing no tag with the
// interests are excluded.
func (s *Store) Recommend(ctx context.Context, interests []string, maxResults int) ([]Recommendation, error) {
	dests, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}

	want := toSet(interests)
	var recs []Recommendation
	for _, d := range dests {
		overlap := jaccard(want, toSet(d.Tags))
		if overlap == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Destination: d,
			MatchScore:  overlapWeight*overlap + ratingWeight*(d.Rating/5),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		return recs[i].Name < recs[j].Name
	})

	if maxResults > 0 && len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	return recs, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for v := range a {
		if b[v] {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}
