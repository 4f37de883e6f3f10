package domain

import "time"

// Revision is the store-level metadata kept alongside one committed blueprint.
type Revision struct {
	Name      string    `json:"name"`
	Digest    string    `json:"digest"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
