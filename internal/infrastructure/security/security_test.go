package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartblog/editor-api/internal/core/domain"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !h.Verify("correct horse", hash) {
		t.Error("expected matching password to verify")
	}
	if h.Verify("battery staple", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestBcryptHasher_MalformedHashNeverMatches(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash must not verify")
	}
}

func TestBcryptHasher_TooLongIsInvalidInput(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("é", 40))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an 80 byte password, got %v", err)
	}
}

func TestBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	if NewBcryptHasher(0).cost != DefaultBcryptCost {
		t.Fatal("expected default cost for an out of range value")
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTManager_IssueVerify(t *testing.T) {
	m := NewJWTManager("secret", 30*time.Minute)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "alice" {
		t.Fatalf("expected subject alice, got %q", sub)
	}
}

func TestJWTManager_ExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret", 30*time.Minute)
	m.now = fixedClock(issuedAt)

	token, err := m.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = fixedClock(issuedAt.Add(29 * time.Minute))
	if _, err := m.Verify(token); err != nil {
		t.Fatalf("token must be valid before expiry: %v", err)
	}

	m.now = fixedClock(issuedAt.Add(30*time.Minute + time.Second))
	if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	token, _ := NewJWTManager("other", time.Hour).Issue("alice")

	if _, err := NewJWTManager("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_RejectsTamperedToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _ := m.Issue("alice")

	parts := strings.Split(token, ".")
	forged, _ := NewJWTManager("secret", time.Hour).Issue("mallory")
	parts[1] = strings.Split(forged, ".")[1]

	if _, err := m.Verify(strings.Join(parts, ".")); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for swapped payload, got %v", err)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTManager("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512, got %v", err)
	}
}

func TestJWTManager_RejectsMissingSubjectAndExpiry(t *testing.T) {
	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("secret"))

	m := NewJWTManager("secret", time.Hour)
	for name, token := range map[string]string{"no sub": noSub, "no exp": noExp, "garbage": "abc.def"} {
		if _, err := m.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
