package model

// Coordinate is a WGS84 position. Values are taken as-is; latitude and
// longitude ranges are not enforced.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Station is a charging station candidate as delivered by the caller. The
// engine only reads Name, Address and the position; everything else is
// carried through untouched.
type Station struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Phone   string  `json:"phone,omitempty"`
}

// FeatureVector holds the seven derived attributes computed per station per
// request. Reliability through Accessibility are heuristic scores in [0,100].
type FeatureVector struct {
	DistanceKm    float64 `json:"distance_km"`
	TimeMin       float64 `json:"time_min"`
	Reliability   float64 `json:"reliability"`
	ChargingSpeed float64 `json:"charging_speed"`
	Cost          float64 `json:"cost"`
	Availability  float64 `json:"availability"`
	Accessibility float64 `json:"accessibility"`
}

// AnnotatedStation pairs a station with its feature vector and a stable
// index within a single request.
type AnnotatedStation struct {
	Station  Station       `json:"station"`
	Features FeatureVector `json:"features"`
	Seq      int           `json:"seq"`
}

// StrategyResult is the outcome of one scoring strategy for one request.
type StrategyResult struct {
	Key       string  `json:"key"`
	Algorithm string  `json:"algorithm"`
	Winner    Station `json:"winner"`
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// StrategyDetail is one explanation line of the consensus report. Score is
// pre-formatted to one decimal place.
type StrategyDetail struct {
	Algorithm string `json:"algorithm"`
	Choice    string `json:"choice"`
	Score     string `json:"score"`
	Reasoning string `json:"reasoning"`
}

// ConsensusReport summarises how the strategies voted.
type ConsensusReport struct {
	Agreement       int              `json:"agreement_count"`
	TotalStrategies int              `json:"total_strategies"`
	Consensus       string           `json:"consensus"`
	Details         []StrategyDetail `json:"details"`
}
