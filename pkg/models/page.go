package models

import (
	"time"
)

// PageStats records what happened to a single page during a run.
type PageStats struct {
	PageNum        int
	OriginalWidth  float64
	OriginalHeight float64
	ContentWidth   float64
	ContentHeight  float64
	Scale          float64
	Blank          bool
}

// RunReport summarizes one conversion.
type RunReport struct {
	InputPath  string
	OutputPath string
	PageCount  int
	Pages      []PageStats
	StartTime  time.Time
	EndTime    time.Time
}
