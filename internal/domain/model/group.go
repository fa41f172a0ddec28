//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Group is a tenant: the company a set of users belongs to.
type Group struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MemberPage is one page of a group's active members.
type MemberPage struct {
	Total   int             `json:"numberOfUsers"`
	Members []MemberSummary `json:"users"`
}
