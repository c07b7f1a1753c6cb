package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database/dbtest"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
)

func newTestService(t *testing.T, ttl time.Duration) (*AuthService, *repository.UserRepository) {
	t.Helper()
	userRepo := repository.NewUserRepository(dbtest.New(t))
	svc := NewAuthService(userRepo, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  ttl,
		Issuer:    "forum-test",
	})
	return svc, userRepo
}

func createUser(t *testing.T, repo *repository.UserRepository, username, password string) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{Username: username, PasswordHash: hash, Email: username + "@example.com"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("abcd")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{"correct password", hash, "abcd", true},
		{"wrong password", hash, "abce", false},
		{"empty password", hash, "", false},
		{"invalid hash", "invalidhash", "abcd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.hash, tt.password); got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashPassword_DifferentHashes(t *testing.T) {
	hash1, _ := HashPassword("abcd")
	hash2, _ := HashPassword("abcd")
	if hash1 == hash2 {
		t.Error("HashPassword() should produce different hashes for same password")
	}
}

func TestIssueAndValidateToken(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	token, err := svc.IssueToken(&models.User{Username: "alice", IsAdmin: true})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	info, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if info.Username != "alice" || !info.IsAdmin {
		t.Errorf("ValidateToken() = %+v, want alice/admin", info)
	}
	if time.Until(info.ExpiresAt) <= 0 {
		t.Errorf("ValidateToken() ExpiresAt = %v, want future", info.ExpiresAt)
	}
}

func TestValidateToken_Rejects(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	token, _ := svc.IssueToken(&models.User{Username: "alice"})

	other := NewAuthService(nil, config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})
	expired, _ := newExpiredToken(t)

	tests := []struct {
		name    string
		svc     *AuthService
		token   string
		wantErr error
	}{
		{"wrong secret", other, token, ErrInvalidToken},
		{"garbage", svc, "invalid.token.here", ErrInvalidToken},
		{"empty", svc, "", ErrInvalidToken},
		{"expired", svc, expired, ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := tt.svc.ValidateToken(tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateToken() error = %v, want %v", err, tt.wantErr)
			}
			if info != nil {
				t.Errorf("ValidateToken() info = %+v, want nil", info)
			}
		})
	}
}

// newExpiredToken signs a token with the shared test secret that expired a minute ago
func newExpiredToken(t *testing.T) (string, error) {
	t.Helper()
	svc := NewAuthService(nil, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute})
	return svc.IssueToken(&models.User{Username: "alice"})
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService(t, 30*time.Minute)
	createUser(t, repo, "alice", "abcd")

	resp, err := svc.Login("alice", "abcd")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Errorf("Login() = %+v, want bearer token", resp)
	}
	if resp.ExpiresIn != int64((30 * time.Minute).Seconds()) {
		t.Errorf("Login() ExpiresIn = %d, want 1800", resp.ExpiresIn)
	}

	if _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want %v", err, ErrInvalidCredentials)
	}
	if _, err := svc.Login("nobody", "abcd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() unknown user error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	svc, repo := newTestService(t, time.Hour)
	user := createUser(t, repo, "alice", "abcd")

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	got, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticate() user id = %d, want %d", got.ID, user.ID)
	}

	if err := repo.SoftDelete(user.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}
	if _, err := svc.Authenticate(token); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Authenticate() after delete error = %v, want %v", err, ErrUserNotFound)
	}
	if _, err := svc.Login("alice", "abcd"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() after delete error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestCreateAdminUser(t *testing.T) {
	svc, repo := newTestService(t, time.Hour)
	cfg := config.AuthConfig{AdminUsername: "root", AdminPassword: "rootpass"}

	for i := 0; i < 2; i++ {
		if err := svc.CreateAdminUser(cfg); err != nil {
			t.Fatalf("CreateAdminUser() run %d error = %v", i, err)
		}
	}

	admin, err := repo.GetByUsername("root")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if !admin.IsAdmin {
		t.Error("CreateAdminUser() user is not admin")
	}
	if admin.Email != "root@forum.local" {
		t.Errorf("CreateAdminUser() email = %q", admin.Email)
	}

	users, _ := repo.GetAll()
	if len(users) != 1 {
		t.Errorf("CreateAdminUser() created %d users, want 1", len(users))
	}
}
