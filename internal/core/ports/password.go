package ports

// PasswordHasher performs one-way password hashing and verification.
// The hash output embeds its own salt and cost parameters.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, hash string) bool
}
