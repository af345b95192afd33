package model

import (
	"fmt"
	"math"
)

// weightDims is the number of weighted factors. The order of WeightsToSlice
// and WeightsFromSlice follows the field order of WeightVector.
const weightDims = 7

// WeightVector assigns one non-negative weight per feature. A valid vector
// sums to 1.
type WeightVector struct {
	Distance      float64 `json:"distance"`
	Time          float64 `json:"time"`
	Reliability   float64 `json:"reliability"`
	Speed         float64 `json:"speed"`
	Cost          float64 `json:"cost"`
	Availability  float64 `json:"availability"`
	Accessibility float64 `json:"accessibility"`
}

// Sum returns the total of all weights.
func (w WeightVector) Sum() float64 {
	return w.Distance + w.Time + w.Reliability + w.Speed + w.Cost + w.Availability + w.Accessibility
}

// Normalize scales the vector so that it sums to 1. A zero vector is left
// unchanged.
func (w *WeightVector) Normalize() {
	sum := w.Sum()
	if sum == 0 {
		return
	}
	w.Distance /= sum
	w.Time /= sum
	w.Reliability /= sum
	w.Speed /= sum
	w.Cost /= sum
	w.Availability /= sum
	w.Accessibility /= sum
}

// Validate checks that all weights are non-negative and sum to 1 within
// floating point tolerance.
func (w WeightVector) Validate() error {
	for _, v := range w.Slice() {
		if v < 0 {
			return fmt.Errorf("negative weight %v", v)
		}
	}
	if diff := math.Abs(w.Sum() - 1); diff > 1e-9 {
		return fmt.Errorf("weights sum to %v, want 1", w.Sum())
	}
	return nil
}

// Slice returns the weights in canonical field order.
func (w WeightVector) Slice() []float64 {
	return []float64{w.Distance, w.Time, w.Reliability, w.Speed, w.Cost, w.Availability, w.Accessibility}
}

// WeightsFromSlice builds a WeightVector from a slice in canonical field
// order. The slice length must be exactly seven.
func WeightsFromSlice(s []float64) (WeightVector, error) {
	if len(s) != weightDims {
		return WeightVector{}, fmt.Errorf("want %d weights, got %d", weightDims, len(s))
	}
	return WeightVector{
		Distance:      s[0],
		Time:          s[1],
		Reliability:   s[2],
		Speed:         s[3],
		Cost:          s[4],
		Availability:  s[5],
		Accessibility: s[6],
	}, nil
}
