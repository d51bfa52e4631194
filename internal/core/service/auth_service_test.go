package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byEmail map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	clone := *user
	clone.ID = "user_1"
	r.byEmail[user.Email] = &clone
	out := clone
	return &out, nil
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 0)

	user, err := svc.Register(context.Background(), "a@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected assigned id")
	}
	if user.IsAdmin {
		t.Error("new users must not be admin")
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatal("plaintext password must never be stored")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")) != nil {
		t.Error("stored hash does not verify against the password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 0)

	if _, err := svc.Register(context.Background(), "a@example.com", "pwd"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "a@example.com", "other")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_EmptyInputRejected(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", 0)

	if _, err := svc.Register(context.Background(), "", "pwd"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_IssuesTokenWithSubjectAndExpiry(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 30*time.Minute)
	if _, err := svc.Register(context.Background(), "a@example.com", "pwd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login(context.Background(), "a@example.com", "pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["sub"] != "a@example.com" {
		t.Errorf("expected sub a@example.com, got %v", claims["sub"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("token missing exp claim")
	}
	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl < 29*time.Minute || ttl > 31*time.Minute {
		t.Errorf("expected ~30m expiry, got %v", ttl)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", 0)
	if _, err := svc.Register(context.Background(), "a@example.com", "pwd"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), "secret", 0)

	_, err := svc.Login(context.Background(), "nobody@example.com", "pwd")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
