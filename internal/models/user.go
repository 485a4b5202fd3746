package models

// UserProfile holds the display fields of a signed-in user, read once on
// home screen entry.
type UserProfile struct {
	FirstName string `firestore:"firstName" json:"firstName"`
	LastName  string `firestore:"lastName" json:"lastName"`
}

// FullName returns the name shown in the home screen header.
func (p UserProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}
