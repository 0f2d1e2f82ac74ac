package ports

// PasswordHasher is the pluggable one-way credential hash. Implementations
// must use a salted, slow password hash; plain digests are not acceptable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare reports whether password matches the stored digest.
	Compare(digest, password string) bool
}
