package models

import "time"

type Company struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	OwnerID       string    `db:"owner_id" json:"owner_id"`
	Collaborators []string  `db:"collaborators" json:"collaborators"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// HasMember reports whether userID owns the company or sits in its
// collaborator set.
func (c *Company) HasMember(userID string) bool {
	if c.OwnerID == userID {
		return true
	}
	for _, id := range c.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}
