package domain

// Identity is the verified caller attached to a request by the auth middleware
type Identity struct {
	UID   string
	Email string
	Admin bool
}

// CanAccessUser returns true if the caller may act on resources owned by userID
func (i *Identity) CanAccessUser(userID string) bool {
	return i.Admin || i.UID == userID
}
