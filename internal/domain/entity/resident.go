package entity

import "time"

// Resident residente del centro de cuidados.
type Resident struct {
	ID        string
	Name      string
	Room      string
	Active    bool
	CreatedAt time.Time
}
