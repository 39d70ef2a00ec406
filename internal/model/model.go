package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&PictographExample{},
	&Classification{},
	&Placement{},
}

////////////////////////
// REFERENCE DATASET
////////////////////////

// MotionColumns is one channel of a stored pictograph, embedded twice with
// blue_ and red_ prefixes.
type MotionColumns struct {
	MotionType         string  `json:"motionType" gorm:"size:16"`
	PropRotDir         string  `json:"propRotDir" gorm:"size:16"`
	StartLoc           string  `json:"startLoc" gorm:"size:4"`
	EndLoc             string  `json:"endLoc" gorm:"size:4"`
	StartOri           string  `json:"startOri" gorm:"size:16"`
	EndOri             string  `json:"endOri" gorm:"size:16"`
	Turns              string  `json:"turns" gorm:"size:8"`
	PrefloatMotionType *string `json:"prefloatMotionType" gorm:"size:16"`
	PrefloatPropRotDir *string `json:"prefloatPropRotDir" gorm:"size:16"`
}

// PictographExample is one reference example of a letter. Position keeps the
// dataset order within the letter.
type PictographExample struct {
	ID        uint          `json:"id" gorm:"primarykey;autoIncrement;"`
	CreatedAt time.Time     `json:"createdAt"`
	Letter    string        `json:"letter" gorm:"size:8;index:idx_example_letter_position,priority:1"`
	Position  int           `json:"position" gorm:"index:idx_example_letter_position,priority:2"`
	Direction string        `json:"direction" gorm:"size:8"`
	Blue      MotionColumns `json:"blue" gorm:"embedded;embeddedPrefix:blue_"`
	Red       MotionColumns `json:"red" gorm:"embedded;embeddedPrefix:red_"`
}

func (*PictographExample) TableName() string {
	return "pictograph_examples"
}

////////////////////////
// RESULTS
////////////////////////

// Classification is one recorded classification outcome.
type Classification struct {
	ID         uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time      `json:"time" gorm:"index:idx_classification_time"`
	BeatNumber int            `json:"beatNumber"`
	Query      datatypes.JSON `json:"query"`
	Letter     string         `json:"letter" gorm:"size:8;index:idx_classification_letter"`
	Confidence float64        `json:"confidence"`
	Strategy   string         `json:"strategy" gorm:"size:64"`
	Reason     string         `json:"reason" gorm:"size:255"`
	Warnings   datatypes.JSON `json:"warnings"`
}

func (*Classification) TableName() string {
	return "classifications"
}

// Placement is one recorded arrow placement.
type Placement struct {
	ID         uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time       time.Time `json:"time" gorm:"index:idx_placement_time"`
	BeatNumber int       `json:"beatNumber"`
	Letter     string    `json:"letter" gorm:"size:8"`
	Color      string    `json:"color" gorm:"size:8"`
	MotionType string    `json:"motionType" gorm:"size:16"`
	GridMode   string    `json:"gridMode" gorm:"size:16"`
	Location   string    `json:"location" gorm:"size:4"`
	Quadrant   int       `json:"quadrant"`
	DX         float64   `json:"dx"`
	DY         float64   `json:"dy"`
}

func (*Placement) TableName() string {
	return "placements"
}
