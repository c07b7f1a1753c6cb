package repository

import (
	"testing"

	"github.com/delesray/forum/internal/database/dbtest"
	"github.com/delesray/forum/internal/models"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		search string
		want   string
	}{
		{"Best", "%best%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		if got := containsPattern(tt.search); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.search, got, tt.want)
		}
	}
}

func TestSearchMatchesLiterallyIgnoringCase(t *testing.T) {
	db := dbtest.New(t)

	user := &models.User{Username: "alice", PasswordHash: "x", Email: "alice@example.com"}
	if err := NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	categoryRepo := NewCategoryRepository(db)
	for _, name := range []string{"General", "Off_topic"} {
		if err := categoryRepo.Create(&models.Category{Name: name}); err != nil {
			t.Fatalf("create category %s: %v", name, err)
		}
	}

	topicRepo := NewTopicRepository(db)
	for _, title := range []string{"100% best", "Best practices", "snake_case names", "plain"} {
		if err := topicRepo.Create(&models.Topic{Title: title, UserID: user.ID, CategoryID: 1}); err != nil {
			t.Fatalf("create topic %q: %v", title, err)
		}
	}

	topicTests := []struct {
		search string
		want   []string
	}{
		{"%", []string{"100% best"}},
		{"_", []string{"snake_case names"}},
		{"BEST", []string{"100% best", "Best practices"}},
		{"plain", []string{"plain"}},
	}
	for _, tt := range topicTests {
		rows, total, err := topicRepo.List(TopicFilter{Search: tt.search, AllCategories: true}, 1, 10)
		if err != nil {
			t.Fatalf("list %q: %v", tt.search, err)
		}
		if int(total) != len(tt.want) || len(rows) != len(tt.want) {
			t.Errorf("search %q: total %d rows %d, want %d", tt.search, total, len(rows), len(tt.want))
			continue
		}
		for i, row := range rows {
			if row.Title != tt.want[i] {
				t.Errorf("search %q row %d = %q, want %q", tt.search, i, row.Title, tt.want[i])
			}
		}
	}

	categories, err := categoryRepo.GetAll("_", "")
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Off_topic" {
		t.Errorf("category search _ = %+v", categories)
	}

	categories, err = categoryRepo.GetAll("GENERAL", "")
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "General" {
		t.Errorf("category search GENERAL = %+v", categories)
	}
}
