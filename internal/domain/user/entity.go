package user

// User represents a user entity in the system.
type User struct {
	ID    int64  // ID is assigned by the server as one plus the current maximum
	Name  string // Name is the display name of the user
	Email string // Email is the contact address of the user
}

// NextID returns the identifier for a new user given the users already stored.
// It is one more than the largest existing ID, or 1 when there are none.
func NextID(users []User) int64 {
	var maxID int64
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
