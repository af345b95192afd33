package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chargewise/chargewise/config"
	"github.com/chargewise/chargewise/connectors/tomtom"
	"github.com/chargewise/chargewise/core/model"
	"github.com/chargewise/chargewise/core/scoring"
	"github.com/chargewise/chargewise/infra/logger"
)

var (
	scoreAddress string
	scoreLat     float64
	scoreLng     float64
	scoreRadius  int
	stationsFile string
	scoreSeed    int64
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score stations once and print the recommendation",
	Long: "Runs the scoring engine for a single location. Stations are read " +
		"from --stations-file or fetched around the location via the TomTom API.",
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreAddress, "address", "", "address to geocode as the user location")
	scoreCmd.Flags().Float64Var(&scoreLat, "lat", 0, "user latitude")
	scoreCmd.Flags().Float64Var(&scoreLng, "lng", 0, "user longitude")
	scoreCmd.Flags().IntVar(&scoreRadius, "radius", 25, "search radius in km")
	scoreCmd.Flags().StringVar(&stationsFile, "stations-file", "", "JSON file with candidate stations")
	scoreCmd.Flags().Int64Var(&scoreSeed, "seed", 0, "seed for the evolving-weight strategy")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("score-command")

	user := model.Coordinate{Lat: scoreLat, Lng: scoreLng}
	var stations []model.Station

	var client *tomtom.Client
	if scoreAddress != "" || stationsFile == "" {
		if cfg.TomTom.APIKey == "" {
			return fmt.Errorf("tomtom api key required to geocode or fetch stations")
		}
		client = tomtom.NewClient(cfg.TomTom)
	}

	if scoreAddress != "" {
		loc, resolved, err := client.Geocode(ctx, scoreAddress)
		if err != nil {
			return fmt.Errorf("geocode: %w", err)
		}
		log.Infof("resolved %q to %s (%.4f, %.4f)", scoreAddress, resolved, loc.Lat, loc.Lng)
		user = loc
	}

	if stationsFile != "" {
		data, err := os.ReadFile(stationsFile)
		if err != nil {
			return fmt.Errorf("read stations: %w", err)
		}
		if err := json.Unmarshal(data, &stations); err != nil {
			return fmt.Errorf("decode stations: %w", err)
		}
	} else {
		stations, err = client.NearbyStations(ctx, user, scoreRadius)
		if err != nil {
			return fmt.Errorf("station search: %w", err)
		}
	}

	engine := scoring.NewEngine(log)
	engine.CandidateCap = cfg.Scoring.CandidateCap
	engine.Seed = scoreSeed
	report, err := engine.Evaluate(ctx, user, stations)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
