// Package scoring runs the three prediction models over a feature set and
// combines their outputs into a single composite rating.
package scoring

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrBadFeatures reports feature values that produced a non-finite score.
var ErrBadFeatures = errors.New("scoring: features produced non-finite score")

// ModelInfo is static metadata attached to each model. Set at construction,
// never mutated, safe for unsynchronized concurrent reads.
type ModelInfo struct {
	Type     string    `json:"type"`
	Accuracy float64   `json:"accuracy"`
	Trained  time.Time `json:"last_trained"`
	Features []string  `json:"features"`
}

// Scorer holds the three models and their metadata.
type Scorer struct {
	direction  ModelInfo
	volatility ModelInfo
	flow       ModelInfo
	logger     zerolog.Logger
}

// NewScorer constructs a scorer with the fixed per-model accuracy constants.
func NewScorer() *Scorer {
	now := time.Now()
	return &Scorer{
		direction: ModelInfo{
			Type:     "gradient_boost",
			Accuracy: 0.67,
			Trained:  now.Add(-24 * time.Hour),
			Features: []string{"price_momentum", "volume_ratio", "rsi_14", "macd_signal"},
		},
		volatility: ModelInfo{
			Type:     "lstm",
			Accuracy: 0.72,
			Trained:  now.Add(-6 * time.Hour),
			Features: []string{"implied_volatility", "iv_rank", "volatility", "gamma_exposure"},
		},
		flow: ModelInfo{
			Type:     "random_forest",
			Accuracy: 0.64,
			Trained:  now.Add(-12 * time.Hour),
			Features: []string{"put_call_ratio", "gamma_exposure", "delta_exposure", "iv_percentile"},
		},
		logger: log.With().Str("component", "scoring").Logger(),
	}
}

// DirectionModel returns the direction model's metadata.
func (s *Scorer) DirectionModel() ModelInfo { return s.direction }

// VolatilityModel returns the volatility model's metadata.
func (s *Scorer) VolatilityModel() ModelInfo { return s.volatility }

// FlowModel returns the flow model's metadata.
func (s *Scorer) FlowModel() ModelInfo { return s.flow }

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
