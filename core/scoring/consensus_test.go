package scoring

import (
	"testing"

	"github.com/chargewise/chargewise/core/model"
)

func result(key, algorithm, winner string, score float64) model.StrategyResult {
	return model.StrategyResult{
		Key:       key,
		Algorithm: algorithm,
		Winner:    model.Station{Name: winner},
		Score:     score,
		Reasoning: "r",
	}
}

func annotatedNamed(names ...string) []model.AnnotatedStation {
	out := make([]model.AnnotatedStation, len(names))
	for i, n := range names {
		out[i] = model.AnnotatedStation{Station: model.Station{Name: n, Lat: float64(i)}, Seq: i}
	}
	return out
}

func TestReduce_Plurality(t *testing.T) {
	stations := annotatedNamed("A", "B")
	results := []model.StrategyResult{
		result("dijkstra", "Dijkstra's Shortest Path", "A", 90),
		result("aStar", "A* Heuristic Search", "B", 80),
		result("genetic", "Genetic Algorithm", "A", 85.26),
		result("machineLearning", "Machine Learning", "A", 70),
	}
	winner, report := Reduce(results, stations)
	if winner.Name != "A" {
		t.Fatalf("winner = %q", winner.Name)
	}
	if report.Agreement != 3 || report.TotalStrategies != 4 {
		t.Fatalf("agreement = %d/%d", report.Agreement, report.TotalStrategies)
	}
	if report.Consensus != "3/4 algorithms agree" {
		t.Fatalf("consensus = %q", report.Consensus)
	}
	if len(report.Details) != 4 {
		t.Fatalf("details = %d", len(report.Details))
	}
	if report.Details[2].Score != "85.3" {
		t.Fatalf("score formatting = %q", report.Details[2].Score)
	}
}

// On a tie the first strategy's pick wins because the tally preserves
// insertion order and requires a strictly higher count.
func TestReduce_TieKeepsFirstSeen(t *testing.T) {
	stations := annotatedNamed("A", "B")
	results := []model.StrategyResult{
		result("dijkstra", "Dijkstra's Shortest Path", "B", 1),
		result("aStar", "A* Heuristic Search", "A", 2),
		result("genetic", "Genetic Algorithm", "B", 3),
		result("machineLearning", "Machine Learning", "A", 4),
	}
	winner, report := Reduce(results, stations)
	if winner.Name != "B" {
		t.Fatalf("tie should keep first seen name, got %q", winner.Name)
	}
	if report.Agreement != 2 {
		t.Fatalf("agreement = %d", report.Agreement)
	}
}

// Two distinct station records sharing a display name collapse into one tally
// bucket. Known behaviour, kept on purpose.
func TestReduce_SameNameCollapses(t *testing.T) {
	stations := []model.AnnotatedStation{
		{Station: model.Station{Name: "Twin", Lat: 1, Lng: 1}, Seq: 0},
		{Station: model.Station{Name: "Twin", Lat: 2, Lng: 2}, Seq: 1},
		{Station: model.Station{Name: "Other", Lat: 3, Lng: 3}, Seq: 2},
	}
	results := []model.StrategyResult{
		{Key: "dijkstra", Algorithm: "Dijkstra's Shortest Path", Winner: stations[0].Station},
		{Key: "aStar", Algorithm: "A* Heuristic Search", Winner: stations[1].Station},
		{Key: "genetic", Algorithm: "Genetic Algorithm", Winner: stations[2].Station},
		{Key: "machineLearning", Algorithm: "Machine Learning", Winner: stations[2].Station},
	}
	winner, report := Reduce(results, stations)
	if winner.Name != "Twin" {
		t.Fatalf("collapsed tally should win, got %q", winner.Name)
	}
	// Both records voted for "Twin" count toward agreement.
	if report.Agreement != 2 {
		t.Fatalf("agreement = %d, want 2", report.Agreement)
	}
	// The resolved station is the first record carrying the name.
	if winner.Lat != 1 {
		t.Fatalf("resolved wrong record: %+v", winner)
	}
}

func TestReduce_FallbackToFirstStrategy(t *testing.T) {
	// Winner names absent from the candidate list leave the tally without a
	// resolvable station; the first strategy's winner is the fallback.
	stations := annotatedNamed("A")
	results := []model.StrategyResult{
		result("dijkstra", "Dijkstra's Shortest Path", "Ghost", 1),
		result("aStar", "A* Heuristic Search", "Phantom", 2),
	}
	winner, _ := Reduce(results, stations)
	if winner.Name != "Ghost" {
		t.Fatalf("fallback = %q, want first strategy's winner", winner.Name)
	}
}
