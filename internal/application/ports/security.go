package ports

import "github.com/HalimaaSeddik/dz-volunteer/internal/domain"

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates JWTs (RS256). Tokens carry the user id,
// the role tag, and the id of the role's profile row (volunteer or
// organization).
type TokenIssuer interface {
	IssueAccessToken(userID string, role domain.Role, profileID string, expiresInSeconds int64) (string, error)
	ValidateAccessToken(tokenString string) (userID string, role domain.Role, profileID string, err error)
}
