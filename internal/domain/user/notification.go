package user

import "time"

// Notification receives the state of a User. Persistence adapters implement it
// to build their own data model without reading the entity field by field.
type Notification interface {
	SetID(id UserID)
	SetName(name UserName)
	SetMailAddress(address MailAddress)
	SetPremium(premium bool)
	SetTimestamps(createdAt, updatedAt time.Time)
}

// Notify hands the user's state to n
func (u *User) Notify(n Notification) {
	n.SetID(u.id)
	n.SetName(u.name)
	n.SetMailAddress(u.mailAddress)
	n.SetPremium(u.premium)
	n.SetTimestamps(u.createdAt, u.updatedAt)
}
