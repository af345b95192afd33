package scoring

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/chargewise/chargewise/core/model"
)

// EvolvingWeightStrategy runs a stochastic local search over the space of
// normalized factor weights. Each individual carries one candidate weight
// vector; its fitness is the best station score achievable under those
// weights. Selection keeps the top half, reproduction refills the population
// through uniform crossover and per-dimension mutation.
//
// The strategy is non-deterministic unless constructed with a seeded random
// source.
type EvolvingWeightStrategy struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	rng            *rand.Rand
}

// NewEvolvingWeightStrategy returns the strategy with its canonical
// parameters. A nil rng is replaced by a time-seeded source.
func NewEvolvingWeightStrategy(rng *rand.Rand) *EvolvingWeightStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &EvolvingWeightStrategy{
		PopulationSize: 20,
		Generations:    15,
		MutationRate:   0.1,
		rng:            rng,
	}
}

func (*EvolvingWeightStrategy) Key() string       { return "genetic" }
func (*EvolvingWeightStrategy) Algorithm() string { return "Genetic Algorithm" }

// individual is one member of the population. The genome holds the seven
// factor weights in the canonical model.WeightVector field order.
type individual struct {
	genome  []float64
	fitness float64
	best    model.Station
}

func (s *EvolvingWeightStrategy) Score(stations []model.AnnotatedStation) (model.StrategyResult, error) {
	if len(stations) == 0 {
		return model.StrategyResult{}, ErrEmptyCandidateSet
	}

	population := make([]individual, s.PopulationSize)
	for i := range population {
		population[i] = individual{genome: s.randomGenome()}
	}

	for gen := 0; gen < s.Generations; gen++ {
		s.evaluate(population, stations)
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		survivors := population[:s.PopulationSize/2]
		next := make([]individual, 0, s.PopulationSize)
		next = append(next, survivors...)
		for len(next) < s.PopulationSize {
			p1 := survivors[s.rng.Intn(len(survivors))]
			p2 := survivors[s.rng.Intn(len(survivors))]
			child := s.crossover(p1, p2)
			s.mutate(&child)
			next = append(next, child)
		}
		population = next
	}

	s.evaluate(population, stations)
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	winner := population[0]

	return model.StrategyResult{
		Key:       s.Key(),
		Algorithm: s.Algorithm(),
		Winner:    winner.best,
		Score:     winner.fitness,
		Reasoning: fmt.Sprintf("Evolved optimal weights over %d generations with %d individuals",
			s.Generations, s.PopulationSize),
	}, nil
}

// genomeWeights converts a genome to a validated weight vector.
func genomeWeights(genome []float64) (model.WeightVector, error) {
	w, err := model.WeightsFromSlice(genome)
	if err != nil {
		return model.WeightVector{}, err
	}
	return w, w.Validate()
}

func (s *EvolvingWeightStrategy) randomGenome() []float64 {
	g := make([]float64, 7)
	for i := range g {
		g[i] = s.rng.Float64()
	}
	normalizeGenome(g)
	return g
}

// normalizeGenome rescales the genome in place so its weights sum to 1.
func normalizeGenome(g []float64) {
	if sum := floats.Sum(g); sum != 0 {
		floats.Scale(1/sum, g)
	}
}

// evaluate assigns each individual the fitness of its best station under its
// genome's weights.
func (s *EvolvingWeightStrategy) evaluate(population []individual, stations []model.AnnotatedStation) {
	for i := range population {
		population[i].fitness, population[i].best = genomeFitness(population[i].genome, stations)
	}
}

// genomeFitness scores every station under the given weights and returns the
// best station with its score. Distance, time and cost count as lower is
// better; the quality factors count directly. Station scores are clamped to
// be non-negative.
func genomeFitness(genome []float64, stations []model.AnnotatedStation) (float64, model.Station) {
	best := stations[0].Station
	bestScore := -1.0
	for _, c := range stations {
		f := c.Features
		score := (100-f.DistanceKm)*genome[0] +
			(100-f.TimeMin)*genome[1] +
			f.Reliability*genome[2] +
			f.ChargingSpeed*genome[3] +
			(100-f.Cost)*genome[4] +
			f.Availability*genome[5] +
			f.Accessibility*genome[6]
		if score < 0 {
			score = 0
		}
		if score > bestScore {
			bestScore = score
			best = c.Station
		}
	}
	return bestScore, best
}

// crossover builds a child inheriting each weight from one parent or the
// other with equal probability, re-normalized to sum to 1.
func (s *EvolvingWeightStrategy) crossover(p1, p2 individual) individual {
	genome := make([]float64, len(p1.genome))
	for i := range genome {
		if s.rng.Float64() > 0.5 {
			genome[i] = p1.genome[i]
		} else {
			genome[i] = p2.genome[i]
		}
	}
	normalizeGenome(genome)
	return individual{genome: genome}
}

// mutate perturbs each weight independently with probability MutationRate by
// a uniform delta in [-0.1, 0.1), clamped to [0.01, 0.99], then re-normalizes
// the whole genome.
func (s *EvolvingWeightStrategy) mutate(child *individual) {
	for i := range child.genome {
		if s.rng.Float64() < s.MutationRate {
			child.genome[i] += (s.rng.Float64() - 0.5) * 0.2
			if child.genome[i] < 0.01 {
				child.genome[i] = 0.01
			}
			if child.genome[i] > 0.99 {
				child.genome[i] = 0.99
			}
		}
	}
	normalizeGenome(child.genome)
}
