package model

import "time"

type OperationStats struct {
	Operation string    `json:"operation" db:"operation"`
	Total     int       `json:"total" db:"total"`
	Succeeded int       `json:"succeeded" db:"succeeded"`
	Failed    int       `json:"failed" db:"failed"`
	LastEvent time.Time `json:"last_event" db:"last_event"`
}

type StatsInfo struct {
	Data []OperationStats `json:"data"`
}

type StatsFilter struct {
	Operation string `query:"operation"`
}
