package domain

import "time"

// Couple owns a registry of gifts and is addressed publicly by its slug.
type Couple struct {
	ID          string
	Slug        string
	BrideName   string
	GroomName   string
	WeddingDate time.Time
	CreatedAt   time.Time
}
