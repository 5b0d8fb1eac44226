package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pomotray/internal/core/model"
)

// parseDuration accepts a whole number with an optional s, m or h suffix.
// A bare number is seconds.
func parseDuration(input string) (time.Duration, error) {
	value := strings.TrimSpace(strings.ToLower(input))
	unit := time.Second
	switch {
	case strings.HasSuffix(value, "s"):
		value = strings.TrimSuffix(value, "s")
	case strings.HasSuffix(value, "m"):
		value = strings.TrimSuffix(value, "m")
		unit = time.Minute
	case strings.HasSuffix(value, "h"):
		value = strings.TrimSuffix(value, "h")
		unit = time.Hour
	}
	amount, err := strconv.Atoi(value)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("invalid duration %q: want a positive number with optional s, m or h suffix", input)
	}
	return time.Duration(amount) * unit, nil
}

// quickConfig builds the in-memory configuration for
// [work] [short-break] [sessions] [long-break]. ok is false without arguments.
func quickConfig(args []string) (model.Config, bool, error) {
	config := model.DefaultConfig()
	if len(args) == 0 {
		return config, false, nil
	}

	var err error
	if config.WorkDuration, err = parseDuration(args[0]); err != nil {
		return config, false, fmt.Errorf("work duration: %w", err)
	}
	if len(args) > 1 {
		if config.ShortBreakDuration, err = parseDuration(args[1]); err != nil {
			return config, false, fmt.Errorf("short break duration: %w", err)
		}
	}
	if len(args) > 2 {
		sessions, convErr := strconv.Atoi(strings.TrimSpace(args[2]))
		if convErr != nil || sessions <= 0 {
			return config, false, fmt.Errorf("sessions until long break: invalid count %q", args[2])
		}
		config.SessionsUntilLongBreak = sessions
	}
	if len(args) > 3 {
		if config.LongBreakDuration, err = parseDuration(args[3]); err != nil {
			return config, false, fmt.Errorf("long break duration: %w", err)
		}
	}

	if err := config.ValidateQuick(); err != nil {
		return config, false, err
	}
	return config, true, nil
}
