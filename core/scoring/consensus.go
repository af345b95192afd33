package scoring

import (
	"fmt"

	"github.com/chargewise/chargewise/core/model"
)

// Reduce aggregates the per-strategy winners into a consensus pick by
// plurality vote on the winning station's name. Two distinct stations
// sharing a display name fall into the same tally bucket.
//
// Ties resolve to the first name that reached the top vote count in result
// order, so the strategy order decides. When no voted name resolves to a
// candidate the first strategy's winner is used.
func Reduce(results []model.StrategyResult, stations []model.AnnotatedStation) (model.Station, model.ConsensusReport) {
	votes := make(map[string]int, len(results))
	order := make([]string, 0, len(results))
	for _, r := range results {
		name := r.Winner.Name
		if _, seen := votes[name]; !seen {
			order = append(order, name)
		}
		votes[name]++
	}

	maxVotes := 0
	var winner model.Station
	found := false
	for _, name := range order {
		if votes[name] > maxVotes {
			maxVotes = votes[name]
			if st, ok := stationByName(stations, name); ok {
				winner = st
				found = true
			}
		}
	}
	if !found && len(results) > 0 {
		winner = results[0].Winner
	}

	agreement := 0
	details := make([]model.StrategyDetail, 0, len(results))
	for _, r := range results {
		if r.Winner.Name == winner.Name {
			agreement++
		}
		details = append(details, model.StrategyDetail{
			Algorithm: r.Algorithm,
			Choice:    r.Winner.Name,
			Score:     fmt.Sprintf("%.1f", r.Score),
			Reasoning: r.Reasoning,
		})
	}

	return winner, model.ConsensusReport{
		Agreement:       agreement,
		TotalStrategies: len(results),
		Consensus:       fmt.Sprintf("%d/%d algorithms agree", agreement, len(results)),
		Details:         details,
	}
}

func stationByName(stations []model.AnnotatedStation, name string) (model.Station, bool) {
	for _, c := range stations {
		if c.Station.Name == name {
			return c.Station, true
		}
	}
	return model.Station{}, false
}
