package storypath

import "testing"

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, nil)
	want := Summary{}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSummarizeNoVisits(t *testing.T) {
	locations := []Location{
		{ID: 1, ScorePoints: 50},
		{ID: 2, ScorePoints: 100},
	}

	got := Summarize(locations, nil)
	want := Summary{TotalPoints: 0, MaxPoints: 150, VisitedLocations: 0, TotalLocations: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSummarizeSingleVisit(t *testing.T) {
	locations := []Location{
		{ID: 1, ScorePoints: 50},
		{ID: 2, ScorePoints: 100},
	}
	records := []TrackingRecord{
		{LocationID: 1, Points: 50},
	}

	got := Summarize(locations, records)
	want := Summary{TotalPoints: 50, MaxPoints: 150, VisitedLocations: 1, TotalLocations: 2}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSummarizeRepeatCheckInsAccumulate(t *testing.T) {
	locations := []Location{{ID: 1, ScorePoints: 50}}
	records := []TrackingRecord{
		{LocationID: 1, Points: 50},
		{LocationID: 1, Points: 50},
	}

	got := Summarize(locations, records)
	if got.TotalPoints != 100 {
		t.Errorf("repeat check-ins: TotalPoints = %d, want 100", got.TotalPoints)
	}
	if got.VisitedLocations != 1 {
		t.Errorf("repeat check-ins: VisitedLocations = %d, want 1", got.VisitedLocations)
	}
	if got.TotalPoints <= got.MaxPoints {
		t.Errorf("repeat check-ins should exceed MaxPoints: %d <= %d", got.TotalPoints, got.MaxPoints)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	locations := []Location{
		{ID: 1, ScorePoints: 10},
		{ID: 2, ScorePoints: 20},
		{ID: 3, ScorePoints: 30},
	}
	records := []TrackingRecord{
		{LocationID: 3, Points: 30},
		{LocationID: 1, Points: 10},
	}

	forward := Summarize(locations, records)

	reversedLocs := []Location{locations[2], locations[1], locations[0]}
	reversedRecs := []TrackingRecord{records[1], records[0]}
	backward := Summarize(reversedLocs, reversedRecs)

	if forward != backward {
		t.Errorf("reordering inputs changed the summary: %+v vs %+v", forward, backward)
	}
}

func TestVisitedSet(t *testing.T) {
	records := []TrackingRecord{
		{LocationID: 1},
		{LocationID: 1},
		{LocationID: 3},
	}

	set := VisitedSet(records)
	if len(set) != 2 {
		t.Fatalf("expected 2 distinct locations, got %d", len(set))
	}
	if !set[1] || !set[3] {
		t.Errorf("expected locations 1 and 3 visited, got %v", set)
	}
	if set[2] {
		t.Error("location 2 should not be visited")
	}
}

func TestDistinctParticipants(t *testing.T) {
	tests := []struct {
		name      string
		usernames []string
		want      int
	}{
		{name: "empty", usernames: nil, want: 0},
		{name: "unique", usernames: []string{"alice", "bob"}, want: 2},
		{name: "duplicates collapse", usernames: []string{"alice", "alice", "bob"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistinctParticipants(tt.usernames); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
