package device

import "time"

// StatusOffline is applied on create when no status is supplied.
const StatusOffline = "offline"

// Device is a stored device row.
type Device struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Type      *string   `json:"type"`
	Status    *string   `json:"status"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input carries the mutable device fields from a request body.
// Nil means the field was absent (or JSON null).
type Input struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Status   *string `json:"status"`
	Location *string `json:"location"`
}

// withDefaults returns a copy of in with the create-time defaults applied.
func (in Input) withDefaults() Input {
	if in.Status == nil || *in.Status == "" {
		status := StatusOffline
		in.Status = &status
	}
	return in
}
