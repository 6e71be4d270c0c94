package auth

// User is the locally fabricated account record. At most one exists at a
// time, held by the auth service.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type snapshot struct {
	User *User `json:"user"`
}
