package repository

import "time"

// DesignInfo summarizes a persisted design row.
type DesignInfo struct {
	UUID       string
	Name       string
	Components int
	UpdatedAt  time.Time
}

// optionPair round-trips one ordered component option through the JSON
// options column.
type optionPair struct {
	K string `json:"k"`
	V string `json:"v"`
}
