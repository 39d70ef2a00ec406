// pkg/core/records.go
package core

import "time"

// ClassificationRecord is one classification outcome handed to a storage backend.
type ClassificationRecord struct {
	ID         uint
	Time       time.Time
	BeatNumber int
	Query      Pictograph
	Letter     Letter // empty when no letter was found
	Confidence float64
	Strategy   string
	Reason     string
	Warnings   []string
}

// PlacementRecord is one arrow placement outcome handed to a storage backend.
type PlacementRecord struct {
	ID         uint
	Time       time.Time
	BeatNumber int
	Letter     Letter
	Color      Color
	MotionType MotionType
	GridMode   GridMode
	Location   Location
	Quadrant   int
	DX         float64
	DY         float64
}
