package setting

import "time"

// Setting is a stored key/value pair.
type Setting struct {
	Key         string    `json:"key"`
	Value       *string   `json:"value"`
	Description *string   `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input is the upsert request body.
type Input struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
}
