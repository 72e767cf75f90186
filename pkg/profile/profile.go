package profile

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFrequency = errors.New("unknown allowance frequency")

// Frequency is how often the player receives an allowance.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

const (
	DefaultAllowance   = 50
	DefaultLiteracy    = 30
	DefaultGrowthStage = 1
	DefaultDay         = 1

	MinLiteracy = 0
	MaxLiteracy = 100
	MinGrowth   = 0
	MaxGrowth   = 5
)

// ParseFrequency normalizes a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// PlayerProfile is the canonical state of the single local player.
type PlayerProfile struct {
	Money              int       `json:"money"`
	Literacy           int       `json:"literacy"`     // financial literacy, 0-100
	GrowthStage        int       `json:"growth_stage"` // 0-5
	Day                int       `json:"day"`          // starts at 1, never decreases
	AllowanceAmount    int       `json:"allowance"`
	AllowanceFrequency Frequency `json:"allowance_frequency"`
	Onboarded          bool      `json:"onboarded"`
}

// Default returns a fresh, not yet onboarded profile.
func Default() PlayerProfile {
	return PlayerProfile{
		Money:              DefaultAllowance,
		Literacy:           DefaultLiteracy,
		GrowthStage:        DefaultGrowthStage,
		Day:                DefaultDay,
		AllowanceAmount:    DefaultAllowance,
		AllowanceFrequency: FrequencyWeekly,
	}
}

// Clamp forces literacy and growth stage into range and keeps day at least 1.
func (p *PlayerProfile) Clamp() {
	p.Literacy = clamp(p.Literacy, MinLiteracy, MaxLiteracy)
	p.GrowthStage = clamp(p.GrowthStage, MinGrowth, MaxGrowth)
	if p.Day < DefaultDay {
		p.Day = DefaultDay
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Statistics is a running summary of decisions, kept for O(1) reads.
type Statistics struct {
	WantsBought   int `json:"wants_bought"`
	SavedForLater int `json:"saved_for_later"`
	Skipped       int `json:"skipped"`
	TotalSpent    int `json:"total_spent"`
	TotalSaved    int `json:"total_saved"`
}

// Add applies a delta to the summary.
func (s *Statistics) Add(d Statistics) {
	s.WantsBought += d.WantsBought
	s.SavedForLater += d.SavedForLater
	s.Skipped += d.Skipped
	s.TotalSpent += d.TotalSpent
	s.TotalSaved += d.TotalSaved
}

// IsZero reports whether no counter is set.
func (s Statistics) IsZero() bool {
	return s == Statistics{}
}
