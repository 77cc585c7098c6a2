package ports

import "context"

type AuthService interface {
	Register(ctx context.Context, username, password string) error
	// Login returns a signed bearer token for valid credentials.
	Login(ctx context.Context, username, password string) (string, error)
}

// PasswordHasher hashes and verifies passwords. Verify never fails loudly:
// a malformed hash simply does not match.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer mints bearer tokens for an authenticated username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// TokenVerifier resolves a bearer token back to the username it was issued
// for, or returns domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// LoginThrottle counts login attempts per username in a fixed window.
type LoginThrottle interface {
	// Hit records an attempt and returns the number of attempts in the
	// current window, including this one.
	Hit(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}
