package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database/dbtest"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services"
	"github.com/delesray/forum/internal/services/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Auth:          config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, Issuer: "forum-test"},
		Paging:        config.PagingConfig{DefaultSize: 5, MaxSize: 15},
		AuthRateLimit: 1000,
		AuthRateBurst: 1000,
	}
	db := dbtest.New(t)
	engine, stop := SetupRouter(db, cfg, services.NoopPublisher{})
	t.Cleanup(stop)

	return &testServer{t: t, engine: engine, db: db}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case url.Values:
		req = httptest.NewRequest(method, path, strings.NewReader(b.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		req = httptest.NewRequest(method, path, strings.NewReader(string(raw)))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(username string) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users/register", "", gin.H{
		"username": username,
		"password": "abcd",
		"email":    username + "@example.com",
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var resp models.RegisterResponse
	decode(s.t, w, &resp)
	return resp.ID
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users/login", "", url.Values{"username": {username}, "password": {password}})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var resp models.TokenResponse
	decode(s.t, w, &resp)
	return resp.AccessToken
}

func (s *testServer) adminToken() string {
	s.t.Helper()
	hash, err := auth.HashPassword("rootpass")
	if err != nil {
		s.t.Fatalf("hash: %v", err)
	}
	admin := &models.User{Username: "root", PasswordHash: hash, Email: "root@example.com", IsAdmin: true}
	if err := repository.NewUserRepository(s.db).Create(admin); err != nil {
		s.t.Fatalf("create admin: %v", err)
	}
	return s.login("root", "rootpass")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func expect(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, status, w.Body.String())
	}
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decode(t, w, &body)
	msg, _ := body["error"].(string)
	return msg
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	expect(t, s.do(http.MethodGet, "/health", "", nil), http.StatusOK)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	expect(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "forum_http_requests_total") {
		t.Error("metrics output is missing forum_http_requests_total")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	id := s.register("alice")
	if id == 0 {
		t.Fatal("register returned id 0")
	}

	w := s.do(http.MethodPost, "/users/register", "", gin.H{"username": "alice", "password": "abcd", "email": "other@example.com"})
	expect(t, w, http.StatusBadRequest)
	if msg := errorOf(t, w); msg != "Such username already exists!" {
		t.Errorf("duplicate error = %q", msg)
	}

	w = s.do(http.MethodPost, "/users/register", "", gin.H{"username": "al", "password": "abcd", "email": "al@example.com"})
	expect(t, w, http.StatusBadRequest)

	token := s.login("alice", "abcd")
	if token == "" {
		t.Fatal("login returned an empty token")
	}

	w = s.do(http.MethodPost, "/users/login", "", url.Values{"username": {"alice"}, "password": {"wrong"}})
	expect(t, w, http.StatusUnauthorized)

	w = s.do(http.MethodGet, fmt.Sprintf("/users/%d", id), "", nil)
	expect(t, w, http.StatusOK)
	var info models.UserInfo
	decode(t, w, &info)
	if info.Username != "alice" {
		t.Errorf("GET user = %+v", info)
	}

	expect(t, s.do(http.MethodGet, "/users/9999", "", nil), http.StatusNotFound)
	expect(t, s.do(http.MethodGet, "/users/abc", "", nil), http.StatusBadRequest)
}

func TestDeleteAccount(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	token := s.login("alice", "abcd")

	expect(t, s.do(http.MethodDelete, "/users", "", gin.H{"current_password": "abcd"}), http.StatusUnauthorized)
	expect(t, s.do(http.MethodDelete, "/users", token, gin.H{"current_password": "nope"}), http.StatusBadRequest)
	expect(t, s.do(http.MethodDelete, "/users", token, gin.H{"current_password": "abcd"}), http.StatusNoContent)

	expect(t, s.do(http.MethodPost, "/users/login", "", url.Values{"username": {"alice"}, "password": {"abcd"}}), http.StatusUnauthorized)
	expect(t, s.do(http.MethodGet, "/messages/users", token, nil), http.StatusUnauthorized)
}

func TestPrivateCategoryVisibility(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	bobID := s.register("bobby")
	bob := s.login("bobby", "abcd")

	w := s.do(http.MethodPost, "/admin/categories", admin, gin.H{"name": "Staff", "is_private": true})
	expect(t, w, http.StatusCreated)
	var category models.Category
	decode(t, w, &category)

	expect(t, s.do(http.MethodPost, "/admin/categories", bob, gin.H{"name": "Nope"}), http.StatusForbidden)

	w = s.do(http.MethodPost, "/topics", admin, gin.H{"title": "Roadmap", "category_id": category.ID})
	expect(t, w, http.StatusCreated)

	path := fmt.Sprintf("/categories/%d", category.ID)
	expect(t, s.do(http.MethodGet, path, "", nil), http.StatusUnauthorized)
	expect(t, s.do(http.MethodGet, path, bob, nil), http.StatusForbidden)
	expect(t, s.do(http.MethodGet, path, "not-a-token", nil), http.StatusUnauthorized)

	grant := fmt.Sprintf("/admin/users/%d/categories/%d", bobID, category.ID)
	expect(t, s.do(http.MethodPost, grant, admin, nil), http.StatusCreated)
	expect(t, s.do(http.MethodPost, grant, admin, nil), http.StatusBadRequest)

	w = s.do(http.MethodGet, path, bob, nil)
	expect(t, w, http.StatusOK)
	var page models.CategoryTopicsPage
	decode(t, w, &page)
	if len(page.Topics) != 1 || page.Topics[0].Title != "Roadmap" {
		t.Errorf("category topics = %+v", page.Topics)
	}

	// Read-only grant: visible but not writable
	w = s.do(http.MethodPost, "/topics", bob, gin.H{"title": "Mine", "category_id": category.ID})
	expect(t, w, http.StatusForbidden)

	w = s.do(http.MethodPatch, grant+"/access", admin, nil)
	expect(t, w, http.StatusOK)
	expect(t, s.do(http.MethodPost, "/topics", bob, gin.H{"title": "Mine", "category_id": category.ID}), http.StatusCreated)

	w = s.do(http.MethodGet, fmt.Sprintf("/admin/categories/%d/users", category.ID), admin, nil)
	expect(t, w, http.StatusOK)
	var privileged models.PrivilegedUsersResponse
	decode(t, w, &privileged)
	if len(privileged.Users) != 1 || privileged.Users[0].Access != "write" {
		t.Errorf("privileged users = %+v", privileged)
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/admin/categories/%d/users/export", category.ID), admin, nil)
	expect(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/vnd.openxmlformats") {
		t.Errorf("export content type = %q", ct)
	}

	expect(t, s.do(http.MethodDelete, grant, admin, nil), http.StatusNoContent)
	expect(t, s.do(http.MethodGet, path, bob, nil), http.StatusForbidden)
}

func TestVoteSequenceOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()
	s.register("alice")
	alice := s.login("alice", "abcd")

	w := s.do(http.MethodPost, "/admin/categories", admin, gin.H{"name": "General"})
	expect(t, w, http.StatusCreated)
	var category models.Category
	decode(t, w, &category)

	w = s.do(http.MethodPost, "/topics", alice, gin.H{"title": "Votes", "category_id": category.ID})
	expect(t, w, http.StatusCreated)
	var topic models.Topic
	decode(t, w, &topic)

	w = s.do(http.MethodPost, fmt.Sprintf("/topics/%d/replies", topic.ID), alice, gin.H{"text": "vote on me"})
	expect(t, w, http.StatusCreated)
	var reply models.Reply
	decode(t, w, &reply)

	votes := fmt.Sprintf("/topics/%d/replies/%d/votes", topic.ID, reply.ID)
	steps := []struct {
		voteType   string
		wantStatus int
		wantMsg    string
	}{
		{"up", http.StatusCreated, fmt.Sprintf("You upvoted reply with ID: %d", reply.ID)},
		{"down", http.StatusOK, "Vote switched to downvote"},
		{"down", http.StatusOK, "Reply already downvoted. Choose different type to switch it"},
	}
	for i, step := range steps {
		w := s.do(http.MethodPut, votes+"?type="+step.voteType, alice, nil)
		expect(t, w, step.wantStatus)
		var result models.VoteResult
		decode(t, w, &result)
		if result.Message != step.wantMsg {
			t.Errorf("step %d message = %q, want %q", i, result.Message, step.wantMsg)
		}
	}

	expect(t, s.do(http.MethodPut, votes+"?type=sideways", alice, nil), http.StatusBadRequest)
	expect(t, s.do(http.MethodPut, votes+"?type=up", "", nil), http.StatusUnauthorized)

	w = s.do(http.MethodGet, votes+"?type=down", alice, nil)
	expect(t, w, http.StatusOK)
	var count models.VoteCountResponse
	decode(t, w, &count)
	if count.Count != 1 {
		t.Errorf("down votes = %d, want 1", count.Count)
	}

	expect(t, s.do(http.MethodDelete, votes, alice, nil), http.StatusNoContent)
	expect(t, s.do(http.MethodDelete, votes, alice, nil), http.StatusNoContent)

	// Locked topics are read-only
	w = s.do(http.MethodPatch, fmt.Sprintf("/topics/%d/locking", topic.ID), alice, nil)
	expect(t, w, http.StatusOK)
	w = s.do(http.MethodPut, votes+"?type=up", alice, nil)
	expect(t, w, http.StatusForbidden)
	if msg := errorOf(t, w); msg != "this topic is read-only" {
		t.Errorf("locked vote error = %q", msg)
	}
}

func TestTopicListingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken()

	w := s.do(http.MethodPost, "/admin/categories", admin, gin.H{"name": "General"})
	expect(t, w, http.StatusCreated)
	var category models.Category
	decode(t, w, &category)

	for i := 1; i <= 10; i++ {
		w := s.do(http.MethodPost, "/topics", admin, gin.H{"title": fmt.Sprintf("topic %02d", i), "category_id": category.ID})
		expect(t, w, http.StatusCreated)
	}

	w = s.do(http.MethodGet, "/topics?page=2&size=3", "", nil)
	expect(t, w, http.StatusOK)
	var page models.TopicsPage
	decode(t, w, &page)

	want := models.PaginationInfo{TotalElements: 10, Page: 2, Size: 3, Pages: 4}
	if page.PaginationInfo != want {
		t.Errorf("pagination = %+v, want %+v", page.PaginationInfo, want)
	}
	if page.Links.Next == nil || *page.Links.Next != "http://example.com/topics?page=3&size=3" {
		t.Errorf("next link = %v", page.Links.Next)
	}

	expect(t, s.do(http.MethodGet, "/topics?status=OPEN&sort=ASC&sort_by=TITLE", "", nil), http.StatusOK)
	expect(t, s.do(http.MethodGet, "/topics?size=16", "", nil), http.StatusBadRequest)
	expect(t, s.do(http.MethodGet, "/topics?page=0", "", nil), http.StatusBadRequest)
	expect(t, s.do(http.MethodGet, "/topics?status=closed", "", nil), http.StatusBadRequest)
	expect(t, s.do(http.MethodGet, "/topics?username=ghost", "", nil), http.StatusNotFound)
}

func TestMessagesOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	bobID := s.register("bobby")
	alice := s.login("alice", "abcd")

	expect(t, s.do(http.MethodPost, "/messages/9999", alice, gin.H{"text": "hi"}), http.StatusNotFound)

	w := s.do(http.MethodPost, fmt.Sprintf("/messages/%d", bobID), alice, gin.H{"text": "hi bob"})
	expect(t, w, http.StatusCreated)
	var message models.Message
	decode(t, w, &message)

	w = s.do(http.MethodPatch, fmt.Sprintf("/messages/%d/text", message.ID), alice, gin.H{"text": "hello bob"})
	expect(t, w, http.StatusOK)

	w = s.do(http.MethodGet, fmt.Sprintf("/messages/%d", bobID), alice, nil)
	expect(t, w, http.StatusOK)
	var conversation []models.Message
	decode(t, w, &conversation)
	if len(conversation) != 1 || conversation[0].Text != "hello bob" {
		t.Errorf("conversation = %+v", conversation)
	}

	w = s.do(http.MethodGet, "/messages/users", alice, nil)
	expect(t, w, http.StatusOK)
	var partners []models.ConversationPartner
	decode(t, w, &partners)
	if len(partners) != 1 || partners[0].Username != "bobby" {
		t.Errorf("partners = %+v", partners)
	}
}
