package domain

// Authorize decides whether a verified role claim satisfies the required
// role. It is a pure predicate: an absent role means the caller was never
// authenticated, a mismatched role means the caller is authenticated but
// not entitled.
func Authorize(role, required string) error {
	if role == "" {
		return ErrUnauthenticated
	}
	if role != required {
		return ErrForbidden
	}
	return nil
}
