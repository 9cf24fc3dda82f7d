package model

import "time"

// VisitorID uniquely identifies a visitor across the system
type VisitorID string

// VisitorIdentity is the durable record created once per visitor at
// registration. Records are append-only; no update or delete exists.
type VisitorIdentity struct {
	ID           VisitorID
	Name         string
	Email        string
	RegisteredAt time.Time
}
