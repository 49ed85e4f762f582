package destinations

// Destination is a curated place of interest in the GAP region.
type Destination struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Rating      float64  `json:"rating"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
}

// Recommendation is a destination scored against visitor interests.
type Recommendation struct {
	Destination
	MatchScore float64 `json:"match_score"`
}
