package domain

// User is an account holder. PasswordHash is the argon2id PHC string and is
// never serialized.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
