package model

import "time"

// HistoryEntry records the settings and strength of one generated password.
// The password itself is never stored.
type HistoryEntry struct {
	ID               int64
	UserID           int64
	EntryID          string
	Length           int
	PoolSize         int
	Classes          string
	ExcludeAmbiguous bool
	EntropyBits      float64
	Strength         string
	CreatedAt        time.Time
}

// HistoryEntryResponse is a history entry as returned by the API.
type HistoryEntryResponse struct {
	EntryID          string    `json:"entry_id"`
	Length           int       `json:"length"`
	PoolSize         int       `json:"pool_size"`
	Classes          []string  `json:"classes"`
	ExcludeAmbiguous bool      `json:"exclude_ambiguous"`
	EntropyBits      float64   `json:"entropy_bits"`
	Strength         string    `json:"strength"`
	CreatedAt        time.Time `json:"created_at"`
}
