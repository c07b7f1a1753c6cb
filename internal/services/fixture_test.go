package services

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/delesray/forum/internal/database/dbtest"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/models"
	"gorm.io/gorm"
)

type publishedEvent struct {
	RoutingKey string
	Payload    map[string]interface{}
}

// recordingPublisher keeps every event it is asked to publish
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{RoutingKey: routingKey, Payload: payload})
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}

type fixture struct {
	t  *testing.T
	db *gorm.DB

	userRepo       *repository.UserRepository
	categoryRepo   *repository.CategoryRepository
	permissionRepo *repository.CategoryPermissionRepository
	topicRepo      *repository.TopicRepository
	replyRepo      *repository.ReplyRepository
	voteRepo       *repository.VoteRepository
	messageRepo    *repository.MessageRepository

	events      *recordingPublisher
	access      *AccessService
	users       *UserService
	categories  *CategoryService
	permissions *CategoryPermissionService
	topics      *TopicService
	replies     *ReplyService
	votes       *VoteService
	messages    *MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	f := &fixture{
		t:              t,
		db:             db,
		userRepo:       repository.NewUserRepository(db),
		categoryRepo:   repository.NewCategoryRepository(db),
		permissionRepo: repository.NewCategoryPermissionRepository(db),
		topicRepo:      repository.NewTopicRepository(db),
		replyRepo:      repository.NewReplyRepository(db),
		voteRepo:       repository.NewVoteRepository(db),
		messageRepo:    repository.NewMessageRepository(db),
		events:         &recordingPublisher{},
	}

	f.access = NewAccessService(f.topicRepo, f.categoryRepo, f.permissionRepo)
	f.users = NewUserService(f.userRepo)
	f.categories = NewCategoryService(f.categoryRepo, f.topicRepo, f.access, f.events)
	f.permissions = NewCategoryPermissionService(f.permissionRepo, f.userRepo, f.categoryRepo, f.events)
	f.topics = NewTopicService(f.topicRepo, f.categoryRepo, f.userRepo, f.replyRepo, f.access, f.events)
	f.replies = NewReplyService(f.replyRepo, f.topicRepo, f.access, f.events)
	f.votes = NewVoteService(f.voteRepo, f.replyRepo, f.topicRepo, f.access, f.events)
	f.messages = NewMessageService(f.messageRepo, f.userRepo, f.events)
	return f
}

func (f *fixture) user(username string) *models.User {
	f.t.Helper()
	user, err := f.users.Register(&models.RegisterRequest{
		Username: username,
		Password: "abcd",
		Email:    username + "@example.com",
	})
	if err != nil {
		f.t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func (f *fixture) admin(username string) *models.User {
	f.t.Helper()
	user := f.user(username)
	if err := f.db.Model(user).Update("is_admin", true).Error; err != nil {
		f.t.Fatalf("promote %s: %v", username, err)
	}
	user.IsAdmin = true
	return user
}

func (f *fixture) category(name string, private, locked bool) *models.Category {
	f.t.Helper()
	category := &models.Category{Name: name, IsPrivate: private, IsLocked: locked}
	if err := f.categoryRepo.Create(category); err != nil {
		f.t.Fatalf("create category %s: %v", name, err)
	}
	return category
}

func (f *fixture) grant(user *models.User, category *models.Category, write bool) {
	f.t.Helper()
	err := f.permissionRepo.Create(&models.CategoryPermission{UserID: user.ID, CategoryID: category.ID, WriteAccess: write})
	if err != nil {
		f.t.Fatalf("grant: %v", err)
	}
}

func (f *fixture) topic(author *models.User, category *models.Category, title string, locked bool) *models.Topic {
	f.t.Helper()
	topic := &models.Topic{Title: title, UserID: author.ID, CategoryID: category.ID, IsLocked: locked}
	if err := f.topicRepo.Create(topic); err != nil {
		f.t.Fatalf("create topic %s: %v", title, err)
	}
	return topic
}

func (f *fixture) reply(author *models.User, topic *models.Topic, text string) *models.Reply {
	f.t.Helper()
	reply := &models.Reply{Text: text, UserID: author.ID, TopicID: topic.ID}
	if err := f.replyRepo.Create(reply); err != nil {
		f.t.Fatalf("create reply: %v", err)
	}
	return reply
}

func pageRequest(t *testing.T, rawURL string, page, size int) PageRequest {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return PageRequest{Page: page, Size: size, URL: u}
}

func assertKind(t *testing.T, err error, want ErrorKind, wantMsg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error = nil, want kind %d %q", want, wantMsg)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("error kind = %d (%v), want %d", got, err, want)
	}
	if wantMsg != "" && err.Error() != wantMsg {
		t.Fatalf("error = %q, want %q", err.Error(), wantMsg)
	}
}
