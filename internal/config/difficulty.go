package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.ExtraMoves += 5
		cfg.Rules.MinGroup = 2
	case DifficultyHard:
		cfg.Rules.ExtraMoves -= 3
		if cfg.Rules.MinGroup < 3 {
			cfg.Rules.MinGroup = 3
		}
		if cfg.Rules.RocketGroup != 0 && cfg.Rules.RocketGroup < cfg.Rules.MinGroup {
			cfg.Rules.RocketGroup = cfg.Rules.MinGroup
		}
	}
}
