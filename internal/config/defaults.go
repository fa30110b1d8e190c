package config

import (
	_ "embed"
)

//go:embed defaults/blockpop.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default blockpop configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Scoring: ScoringConfig{
			PopBegan:         1,
			NoEffect:         1,
			RocketSingleAxis: 60,
			RocketBilinear:   110,
			StoneHit:         20,
			Replace:          1,
		},
		Timing: TimingConfig{
			Move:        8,
			Select:      6,
			SimplePop:   12,
			RocketSweep: 18,
			StoneBreak:  10,
			Replace:     8,
			HintAfter:   300,
		},
		Rules: RulesConfig{
			MinGroup:      2,
			RocketGroup:   5,
			BilinearGroup: 8,
			ExtraMoves:    0,
		},
	}
}
