// Package config provides YAML-based game configuration loading and
// difficulty presets for blockpop.
package config

import (
	"fmt"

	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
)

// GameConfig contains all configuration for blockpop.
type GameConfig struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Timing  TimingConfig  `yaml:"timing"`
	Rules   RulesConfig   `yaml:"rules"`
}

// ScoringConfig defines fixed score contributions.
type ScoringConfig struct {
	PopBegan         int `yaml:"pop_began"`
	NoEffect         int `yaml:"no_effect"`
	RocketSingleAxis int `yaml:"rocket_single_axis"`
	RocketBilinear   int `yaml:"rocket_bilinear"`
	StoneHit         int `yaml:"stone_hit"`
	Replace          int `yaml:"replace"`
}

// TimingConfig defines animation lengths in ticks.
type TimingConfig struct {
	Move        int `yaml:"move"`
	Select      int `yaml:"select"`
	SimplePop   int `yaml:"simple_pop"`
	RocketSweep int `yaml:"rocket_sweep"`
	StoneBreak  int `yaml:"stone_break"`
	Replace     int `yaml:"replace"`
	HintAfter   int `yaml:"hint_after"` // idle ticks before a hint shake, 0 disables
}

// RulesConfig defines the player-facing rules of the game loop.
type RulesConfig struct {
	MinGroup      int `yaml:"min_group"`      // smallest group that can be popped
	RocketGroup   int `yaml:"rocket_group"`   // group size that leaves a rocket behind
	BilinearGroup int `yaml:"bilinear_group"` // group size that leaves a bilinear rocket
	ExtraMoves    int `yaml:"extra_moves"`    // added to every level's move budget
}

// Tuning converts the config into the numbers the rules engine uses.
func (c GameConfig) Tuning() core.Tuning {
	return core.Tuning{
		Score: core.ScoreTable{
			PopBegan:         c.Scoring.PopBegan,
			NoEffect:         c.Scoring.NoEffect,
			RocketSingleAxis: c.Scoring.RocketSingleAxis,
			RocketBilinear:   c.Scoring.RocketBilinear,
			StoneHit:         c.Scoring.StoneHit,
			Replace:          c.Scoring.Replace,
		},
		Timing: core.TimingTable{
			Move:        c.Timing.Move,
			Select:      c.Timing.Select,
			SimplePop:   c.Timing.SimplePop,
			RocketSweep: c.Timing.RocketSweep,
			StoneBreak:  c.Timing.StoneBreak,
			Replace:     c.Timing.Replace,
		},
	}
}

// Validate checks values the game loop cannot work with.
func (c GameConfig) Validate() error {
	if c.Rules.MinGroup < 1 {
		return fmt.Errorf("config: rules.min_group must be at least 1, got %d", c.Rules.MinGroup)
	}
	if c.Rules.RocketGroup != 0 && c.Rules.RocketGroup < c.Rules.MinGroup {
		return fmt.Errorf("config: rules.rocket_group %d is below min_group %d", c.Rules.RocketGroup, c.Rules.MinGroup)
	}
	if c.Rules.BilinearGroup != 0 && c.Rules.BilinearGroup < c.Rules.RocketGroup {
		return fmt.Errorf("config: rules.bilinear_group %d is below rocket_group %d", c.Rules.BilinearGroup, c.Rules.RocketGroup)
	}
	timings := map[string]int{
		"move":         c.Timing.Move,
		"select":       c.Timing.Select,
		"simple_pop":   c.Timing.SimplePop,
		"rocket_sweep": c.Timing.RocketSweep,
		"stone_break":  c.Timing.StoneBreak,
		"replace":      c.Timing.Replace,
		"hint_after":   c.Timing.HintAfter,
	}
	for name, v := range timings {
		if v < 0 {
			return fmt.Errorf("config: timing.%s must not be negative, got %d", name, v)
		}
	}
	return nil
}
