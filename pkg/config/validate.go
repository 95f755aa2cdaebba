package config

import (
	"fmt"
	"strings"
)

// ValidateCore ensures critical configuration is present and sane.
func (c *Config) ValidateCore() error {
	var problems []string

	if strings.TrimSpace(c.Server.Port) == "" {
		problems = append(problems, "SERVER_PORT must be set")
	}
	if c.Dataset.Size <= 0 {
		problems = append(problems, "DATASET_SIZE must be positive")
	}
	if c.Generator.IncomingProbability < 0 || c.Generator.IncomingProbability > 1 {
		problems = append(problems, "GEN_INCOMING_PROBABILITY must be in [0,1]")
	}
	if c.Generator.MemoProbability < 0 || c.Generator.MemoProbability > 1 {
		problems = append(problems, "GEN_MEMO_PROBABILITY must be in [0,1]")
	}
	if c.Generator.MinValue >= c.Generator.MaxValue {
		problems = append(problems, "GEN_MIN_VALUE must be below GEN_MAX_VALUE")
	}
	if c.Generator.HeightStep <= 0 {
		problems = append(problems, "GEN_HEIGHT_STEP must be positive")
	}
	if c.Scoring.FlagBelow < 0 || c.Scoring.FlagBelow > c.Scoring.BaseScore {
		problems = append(problems, "SCORE_FLAG_BELOW must be in [0, SCORE_BASE]")
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.URL) == "" {
		problems = append(problems, "REDIS_URL must be set when REDIS_ENABLED=true")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return nil
}
