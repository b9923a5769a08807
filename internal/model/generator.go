package model

import "github.com/passguard/passguard-go/internal/crypto"

// GenerateRequest represents a password generation or assessment request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length           int   `json:"length"`
	Lowercase        *bool `json:"lowercase"`
	Uppercase        *bool `json:"uppercase"`
	Numbers          *bool `json:"numbers"`
	Symbols          *bool `json:"symbols"`
	ExcludeAmbiguous bool  `json:"exclude_ambiguous"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password         string          `json:"password"`
	Length           int             `json:"length"`
	Classes          []string        `json:"classes"`
	ExcludeAmbiguous bool            `json:"exclude_ambiguous"`
	PoolSize         int             `json:"pool_size"`
	EntropyBits      float64         `json:"entropy_bits"`
	Strength         crypto.Strength `json:"strength"`
	Percent          int             `json:"percent"`
	Rules            []string        `json:"rules"`
}

// AssessResponse describes the strength of a generation request without a password.
type AssessResponse struct {
	Length      int             `json:"length"`
	PoolSize    int             `json:"pool_size"`
	EntropyBits float64         `json:"entropy_bits"`
	Strength    crypto.Strength `json:"strength"`
	Percent     int             `json:"percent"`
}

// PasswordRequest carries an existing password for shuffle and export.
type PasswordRequest struct {
	Password string `json:"password"`
}

// PasswordResponse carries a single password.
type PasswordResponse struct {
	Password string `json:"password"`
}
