package services

import (
	"context"
	"testing"

	"github.com/delesray/forum/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestGrantLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user("alice")
	private := f.category("Staff", true, false)

	if _, err := f.permissions.Grant(ctx, alice.ID, private.ID); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	_, err := f.permissions.Grant(ctx, alice.ID, private.ID)
	assertKind(t, err, KindValidation, "User is already in the category")

	canWrite, _ := f.permissionRepo.HasWriteAccess(alice.ID, private.ID)
	if canWrite {
		t.Error("a new grant should be read-only")
	}

	msg, err := f.permissions.ToggleWriteAccess(ctx, alice.ID, private.ID)
	if err != nil || msg != "User can write" {
		t.Errorf("ToggleWriteAccess() = %q, %v", msg, err)
	}
	msg, err = f.permissions.ToggleWriteAccess(ctx, alice.ID, private.ID)
	if err != nil || msg != "User cannot write" {
		t.Errorf("ToggleWriteAccess() = %q, %v", msg, err)
	}

	for i := 0; i < 2; i++ {
		if err := f.permissions.Revoke(ctx, alice.ID, private.ID); err != nil {
			t.Fatalf("Revoke() run %d error = %v", i, err)
		}
	}
	_, err = f.permissions.ToggleWriteAccess(ctx, alice.ID, private.ID)
	assertKind(t, err, KindNotFound, "User is not in that category")

	_, err = f.permissions.Grant(ctx, 9999, private.ID)
	assertKind(t, err, KindNotFound, "User with ID: 9999 doesn't exist!")
	_, err = f.permissions.Grant(ctx, alice.ID, 9999)
	assertKind(t, err, KindNotFound, "Category #ID:9999 does not exist")
}

func TestPrivilegedUsers(t *testing.T) {
	f := newFixture(t)
	public := f.category("Public", false, false)
	private := f.category("Staff", true, false)
	f.grant(f.user("zed"), private, false)
	f.grant(f.user("carol"), private, true)
	f.grant(f.user("bob"), private, false)

	_, err := f.permissions.PrivilegedUsers(public.ID)
	assertKind(t, err, KindValidation, "This category is public")

	resp, err := f.permissions.PrivilegedUsers(private.ID)
	if err != nil {
		t.Fatalf("PrivilegedUsers() error = %v", err)
	}
	want := []models.PrivilegedUser{
		{Username: "carol", Access: "write"},
		{Username: "bob", Access: "read"},
		{Username: "zed", Access: "read"},
	}
	if resp.Category != "Staff" || len(resp.Users) != len(want) {
		t.Fatalf("PrivilegedUsers() = %+v", resp)
	}
	for i, u := range resp.Users {
		if u.Username != want[i].Username || u.Access != want[i].Access {
			t.Errorf("Users[%d] = %+v, want %+v", i, u, want[i])
		}
	}

	buf, name, err := f.permissions.ExportPrivilegedUsers(private.ID)
	if err != nil {
		t.Fatalf("ExportPrivilegedUsers() error = %v", err)
	}
	if name == "" {
		t.Error("ExportPrivilegedUsers() returned no file name")
	}
	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer wb.Close()
	cell, _ := wb.GetCellValue("Privileged users", "B3")
	if cell != "carol" {
		t.Errorf("first exported user = %q, want carol", cell)
	}
}
