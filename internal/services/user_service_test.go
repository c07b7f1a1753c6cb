package services

import (
	"context"
	"testing"

	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services/auth"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Register(&models.RegisterRequest{Username: "alice", Password: "abcd", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == 0 {
		t.Error("Register() returned no id")
	}
	if !auth.VerifyPassword(user.PasswordHash, "abcd") {
		t.Error("Register() stored a hash that does not match the password")
	}

	got, err := f.users.GetByID(user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" {
		t.Errorf("GetByID() = %+v", got)
	}

	_, err = f.users.Register(&models.RegisterRequest{Username: "alice", Password: "abcd", Email: "other@example.com"})
	assertKind(t, err, KindConflict, "Such username already exists!")

	_, err = f.users.Register(&models.RegisterRequest{Username: "alice2", Password: "abcd", Email: "alice@example.com"})
	assertKind(t, err, KindConflict, "Such email already exists!")
}

func TestGetUser_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.GetByID(42)
	assertKind(t, err, KindNotFound, "User with ID: 42 doesn't exist!")
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	user := f.user("alice")

	updated, err := f.users.Update(user, &models.UpdateUserRequest{FirstName: "Alice"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	updated, err = f.users.Update(updated, &models.UpdateUserRequest{LastName: "Smith"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stored, _ := f.userRepo.GetByID(user.ID)
	if stored.FirstName != "Alice" || stored.LastName != "Smith" {
		t.Errorf("stored names = %q %q", stored.FirstName, stored.LastName)
	}
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	user := f.user("alice")

	err := f.users.ChangePassword(user, &models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "efgh", ConfirmPassword: "efgh"})
	assertKind(t, err, KindValidation, "Current password is incorrect")

	err = f.users.ChangePassword(user, &models.ChangePasswordRequest{CurrentPassword: "abcd", NewPassword: "efgh", ConfirmPassword: "efgi"})
	assertKind(t, err, KindValidation, "New password and confirmation do not match")

	if err := f.users.ChangePassword(user, &models.ChangePasswordRequest{CurrentPassword: "abcd", NewPassword: "efgh", ConfirmPassword: "efgh"}); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}
	stored, _ := f.userRepo.GetByID(user.ID)
	if !auth.VerifyPassword(stored.PasswordHash, "efgh") {
		t.Error("ChangePassword() did not store the new password")
	}
}

func TestDeleteUser_RemovesMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user("alice")
	bob := f.user("bob")
	carol := f.user("carol")

	for _, pair := range [][2]*models.User{{alice, bob}, {bob, alice}, {bob, carol}} {
		if _, err := f.messages.Send(ctx, pair[0], pair[1].ID, "hi"); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}

	err := f.users.Delete(alice, "wrong")
	assertKind(t, err, KindValidation, "Current password is incorrect")

	if err := f.users.Delete(alice, "abcd"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err = f.users.GetByID(alice.ID)
	assertKind(t, err, KindNotFound, "")

	var remaining int64
	f.db.Model(&models.Message{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("messages after delete = %d, want 1", remaining)
	}

	// The username stays reserved
	_, err = f.users.Register(&models.RegisterRequest{Username: "alice", Password: "abcd", Email: "new@example.com"})
	assertKind(t, err, KindConflict, "Such username already exists!")
}
