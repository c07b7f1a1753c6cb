package excel

import (
	"testing"

	"github.com/delesray/forum/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestColumnToLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{3, "C"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
	}
	for _, tt := range tests {
		if got := columnToLetter(tt.col); got != tt.want {
			t.Errorf("columnToLetter(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestExportPrivilegedUsers(t *testing.T) {
	users := []models.PrivilegedUser{
		{UserID: 3, Username: "carol", Access: "write"},
		{UserID: 2, Username: "bob", Access: "read"},
	}

	buf, err := ExportPrivilegedUsers("Staff", users)
	if err != nil {
		t.Fatalf("ExportPrivilegedUsers() error = %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Privileged users")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0][0] != "Category: Staff" {
		t.Errorf("title = %q", rows[0][0])
	}
	if rows[1][1] != "username" {
		t.Errorf("header = %v", rows[1])
	}
	if rows[2][1] != "carol" || rows[2][2] != "write" {
		t.Errorf("first grant row = %v", rows[2])
	}
	if rows[3][1] != "bob" || rows[3][2] != "read" {
		t.Errorf("second grant row = %v", rows[3])
	}
}

func TestExportPrivilegedUsers_Empty(t *testing.T) {
	buf, err := ExportPrivilegedUsers("Staff", nil)
	if err != nil {
		t.Fatalf("ExportPrivilegedUsers() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("ExportPrivilegedUsers() returned an empty workbook")
	}
}
