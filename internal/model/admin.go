package model

import "time"

// AdminIdentity is the authenticated operator carried in the request context.
type AdminIdentity struct {
	Username string
	IssuedAt time.Time
}
