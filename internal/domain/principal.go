package domain

import "github.com/google/uuid"

// Principal is the authenticated caller resolved by the HTTP boundary.
// Identity lives in the external auth system; only the verified claims
// travel through this service.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}
