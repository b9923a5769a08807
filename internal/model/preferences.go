package model

import "time"

// Preferences are the saved generator settings of a user.
type Preferences struct {
	UserID           int64
	Length           int
	Lowercase        bool
	Uppercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeAmbiguous bool
	UpdatedAt        time.Time
}

// PreferencesPayload is the API shape of Preferences, used for both reads and writes.
type PreferencesPayload struct {
	Length           int  `json:"length"`
	Lowercase        bool `json:"lowercase"`
	Uppercase        bool `json:"uppercase"`
	Numbers          bool `json:"numbers"`
	Symbols          bool `json:"symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}
