package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule validates a cron expression using the robfig/cron/v3
// parser so that any schedule accepted here is accepted by the scheduler.
//
// Standard five-field format: "minute hour day month weekday".
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("invalid cron schedule: cannot be empty")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	return nil
}

// ValidateTimezone validates an IANA timezone name by attempting to load it.
// Fails when the name is wrong or the system lacks timezone data.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("invalid timezone: cannot be empty")
	}

	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}

	return nil
}

// ValidateIntRange validates that a value lies within [min, max] inclusive.
func ValidateIntRange(value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return nil
}

// ValidateNonNegativeInt validates that a value is zero or positive.
// A zero article cap is meaningful (process nothing this run), so zero
// must pass here.
func ValidateNonNegativeInt(value int) error {
	if value < 0 {
		return fmt.Errorf("value %d must not be negative", value)
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is strictly positive.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration %v must be positive", d)
	}
	return nil
}

// ValidateScoreRange validates that a threshold lies on the 1-10 scoring scale.
func ValidateScoreRange(value float64) error {
	if value < 1 || value > 10 {
		return fmt.Errorf("score %v out of range [1, 10]", value)
	}
	return nil
}
