package storypath

// Summary is the participant's standing within one project: points earned
// against the obtainable maximum, and distinct locations visited against the
// project total.
type Summary struct {
	TotalPoints      int `json:"totalPoints"`
	MaxPoints        int `json:"maxPoints"`
	VisitedLocations int `json:"visitedLocations"`
	TotalLocations   int `json:"totalLocations"`
}

// Summarize folds a project's location set and one participant's tracking
// records into a Summary. The fold is pure and order-independent. Points are
// summed per record, not per distinct location: repeat check-ins accumulate,
// so TotalPoints can exceed MaxPoints.
func Summarize(locations []Location, records []TrackingRecord) Summary {
	s := Summary{TotalLocations: len(locations)}
	for _, loc := range locations {
		s.MaxPoints += loc.ScorePoints
	}

	visited := make(map[int64]struct{}, len(records))
	for _, rec := range records {
		s.TotalPoints += rec.Points
		visited[rec.LocationID] = struct{}{}
	}
	s.VisitedLocations = len(visited)
	return s
}

// VisitedSet reports which location IDs appear in the tracking records.
func VisitedSet(records []TrackingRecord) map[int64]bool {
	set := make(map[int64]bool, len(records))
	for _, rec := range records {
		set[rec.LocationID] = true
	}
	return set
}

// DistinctParticipants counts unique usernames in a flat tracking projection.
func DistinctParticipants(usernames []string) int {
	seen := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		seen[u] = struct{}{}
	}
	return len(seen)
}
