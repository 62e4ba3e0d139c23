package models

import "time"

// FarmStats aggregates picked-egg metrics over a closed date window. Derived
// on demand, never persisted.
type FarmStats struct {
	TotalPickedEggs                  int64   `json:"totalPickedEggs"`
	AverageNotBrokenEggsPickedPerDay int64   `json:"averageNotBrokenEggsPickedPerDay"`
	AverageBrokenEggsPickedPerDay    int64   `json:"averageBrokenEggsPickedPerDay"`
	BrokenEggsPercentage             float64 `json:"brokenEggsPercentage"`
}

// DailyStatsRow is one exported line of the scheduled per-farm daily report.
type DailyStatsRow struct {
	Date     time.Time
	FarmID   string
	FarmName string
	Stats    FarmStats
}
