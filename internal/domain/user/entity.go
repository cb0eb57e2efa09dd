package user

// User is one record of the user file. Password is stored exactly as it was
// submitted.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
