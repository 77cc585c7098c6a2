package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smartblog/editor-api/internal/core/domain"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// fakeHasher is a cheap reversible stand-in for bcrypt.
type fakeHasher struct {
	verified []string
}

func (h *fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (h *fakeHasher) Verify(plain, hash string) bool {
	h.verified = append(h.verified, hash)
	return hash == "hashed:"+plain
}

type stubIssuer struct{ err error }

func (i stubIssuer) Issue(username string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "token-for-" + username, nil
}

type stubThrottle struct {
	hits   map[string]int64
	hitErr error
	resets []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{hits: make(map[string]int64)}
}

func (t *stubThrottle) Hit(_ context.Context, username string) (int64, error) {
	if t.hitErr != nil {
		return 0, t.hitErr
	}
	t.hits[username]++
	return t.hits[username], nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	delete(t.hits, username)
	return nil
}

func newAuthSvc(repo *stubUserRepo, opts ...AuthOption) *AuthService {
	return NewAuthService(repo, &fakeHasher{}, stubIssuer{}, zerolog.Nop(), opts...)
}

func TestAuthService_Register_StoresHash(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	if err := svc.Register(context.Background(), "alice", "pass123"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatal("expected user to be stored")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatal("expected password to be hashed")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("CreatedAt must be stamped")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	if err := svc.Register(context.Background(), "bob", "first"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	err := svc.Register(context.Background(), "bob", "second")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if repo.users["bob"].PasswordHash != "hashed:first" {
		t.Fatalf("first hash must be unchanged, got %q", repo.users["bob"].PasswordHash)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	if err := svc.Register(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Register(context.Background(), "bob", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_PasswordLimitCountsBytes(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	multibyte := strings.Repeat("é", 40) // 40 characters, 80 bytes
	if err := svc.Register(context.Background(), "zoe", multibyte); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, ok := repo.users["zoe"]; ok {
		t.Fatal("user must not be stored")
	}

	if err := svc.Register(context.Background(), "zoe", strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 bytes must be accepted, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	_ = svc.Register(context.Background(), "carol", "s3cret")

	token, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "token-for-carol" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	_ = svc.Register(context.Background(), "dave", "goodpass")

	if _, err := svc.Login(context.Background(), "dave", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	hasher := &fakeHasher{}
	svc := NewAuthService(newStubUserRepo(), hasher, stubIssuer{}, zerolog.Nop())

	if _, err := svc.Login(context.Background(), "ghost", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(hasher.verified) != 1 || !strings.HasPrefix(hasher.verified[0], "hashed:") {
		t.Fatalf("expected a dummy verification for unknown users, got %v", hasher.verified)
	}
}

func TestAuthService_Login_StoreErrorPropagates(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("db down")
	svc := newAuthSvc(repo)

	_, err := svc.Login(context.Background(), "erin", "pass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected raw store error, got %v", err)
	}
}

func TestAuthService_Login_IssuerError(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, &fakeHasher{}, stubIssuer{err: errors.New("sign failed")}, zerolog.Nop())
	_ = svc.Register(context.Background(), "frank", "pw")

	if _, err := svc.Login(context.Background(), "frank", "pw"); err == nil {
		t.Fatal("expected issuer error to surface")
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc := newAuthSvc(repo, WithLoginThrottle(throttle, 2))
	_ = svc.Register(context.Background(), "gina", "right")

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), "gina", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	if _, err := svc.Login(context.Background(), "gina", "right"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts once the window is exhausted, got %v", err)
	}
}

func TestAuthService_Login_SuccessResetsThrottle(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc := newAuthSvc(repo, WithLoginThrottle(throttle, 5))
	_ = svc.Register(context.Background(), "hank", "right")

	_, _ = svc.Login(context.Background(), "hank", "wrong")
	if _, err := svc.Login(context.Background(), "hank", "right"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(throttle.resets) != 1 || throttle.hits["hank"] != 0 {
		t.Fatalf("expected counter reset after success, resets=%v hits=%d", throttle.resets, throttle.hits["hank"])
	}
}

func TestAuthService_Login_ThrottleErrorFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	throttle.hitErr = errors.New("redis timeout")
	svc := newAuthSvc(repo, WithLoginThrottle(throttle, 1))
	_ = svc.Register(context.Background(), "ivy", "pw")

	if _, err := svc.Login(context.Background(), "ivy", "pw"); err != nil {
		t.Fatalf("throttle failure must not block login, got %v", err)
	}
}
