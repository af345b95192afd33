package scoring

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chargewise/chargewise/core/model"
)

func evolvingFixture(t *testing.T) []model.AnnotatedStation {
	t.Helper()
	return annotate(t, model.Coordinate{Lat: 37, Lng: -122},
		model.Station{Name: "Tesla Supercharger", Address: "Highway 101", Lat: 37.02, Lng: -122.01},
		model.Station{Name: "EVgo Rapid", Address: "Target Center", Lat: 37.1, Lng: -122.2},
		model.Station{Name: "City Charge", Address: "Old Town", Lat: 36.8, Lng: -121.9},
	)
}

func TestEvolvingWeight_SeededDeterminism(t *testing.T) {
	annotated := evolvingFixture(t)

	first, err := NewEvolvingWeightStrategy(rand.New(rand.NewSource(42))).Score(annotated)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewEvolvingWeightStrategy(rand.New(rand.NewSource(42))).Score(annotated)
	if err != nil {
		t.Fatal(err)
	}
	if first.Winner.Name != second.Winner.Name || first.Score != second.Score {
		t.Fatalf("same seed diverged: %+v vs %+v", first, second)
	}
}

func TestEvolvingWeight_WinnerFromInput(t *testing.T) {
	annotated := evolvingFixture(t)
	for seed := int64(1); seed <= 10; seed++ {
		res, err := NewEvolvingWeightStrategy(rand.New(rand.NewSource(seed))).Score(annotated)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		found := false
		for _, c := range annotated {
			if c.Station.Name == res.Winner.Name {
				found = true
			}
		}
		if !found {
			t.Fatalf("seed %d: winner %q not in candidate set", seed, res.Winner.Name)
		}
		if res.Score < 0 {
			t.Fatalf("seed %d: fitness %v below zero", seed, res.Score)
		}
	}
}

func TestEvolvingWeight_GenomeNormalization(t *testing.T) {
	s := NewEvolvingWeightStrategy(rand.New(rand.NewSource(9)))

	assertSum := func(g []float64, what string) {
		t.Helper()
		sum := 0.0
		for _, v := range g {
			if v < 0 {
				t.Fatalf("%s: negative weight %v", what, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("%s: weights sum to %v", what, sum)
		}
	}

	p1 := individual{genome: s.randomGenome()}
	p2 := individual{genome: s.randomGenome()}
	assertSum(p1.genome, "parent 1")
	assertSum(p2.genome, "parent 2")

	for i := 0; i < 50; i++ {
		child := s.crossover(p1, p2)
		assertSum(child.genome, "crossover child")
		s.mutate(&child)
		assertSum(child.genome, "mutated child")
	}
}

func TestEvolvingWeight_WinningGenomeValidates(t *testing.T) {
	s := NewEvolvingWeightStrategy(rand.New(rand.NewSource(5)))
	g := s.randomGenome()
	if _, err := genomeWeights(g); err != nil {
		t.Fatalf("random genome invalid: %v", err)
	}
}

func TestEvolvingWeight_NilRNG(t *testing.T) {
	s := NewEvolvingWeightStrategy(nil)
	if s.rng == nil {
		t.Fatal("expected fallback random source")
	}
	if s.PopulationSize != 20 || s.Generations != 15 || s.MutationRate != 0.1 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestGenomeFitness_ClampsNegative(t *testing.T) {
	annotated := annotate(t, model.Coordinate{},
		model.Station{Name: "Remote", Address: "Nowhere", Lat: 10, Lng: 10})
	// All weight on distance, station ~1500 km away: raw score is negative
	// and must clamp to zero.
	fitness, best := genomeFitness([]float64{1, 0, 0, 0, 0, 0, 0}, annotated)
	if fitness != 0 {
		t.Fatalf("fitness = %v, want 0", fitness)
	}
	if best.Name != "Remote" {
		t.Fatalf("best = %q", best.Name)
	}
}
