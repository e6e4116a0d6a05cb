package domain

import "time"

type Institution struct {
	ID        string
	Name      string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Administrators is only populated by lookups that ask for it.
	Administrators []Identity
}
