package services

import (
	"context"
	"testing"
)

func TestReplyLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user("author")
	topic := f.topic(author, f.category("General", false, false), "replies", false)

	reply, err := f.replies.Create(ctx, author, topic.ID, "  first  ")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if reply.Text != "first" || reply.TopicID != topic.ID {
		t.Errorf("Create() = %+v", reply)
	}

	updated, err := f.replies.Update(author, topic.ID, reply.ID, "edited")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.IsEdited || updated.Text != "edited" {
		t.Errorf("Update() = %+v", updated)
	}

	stored, err := f.replyRepo.GetByID(reply.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !stored.IsEdited || stored.Text != "edited" {
		t.Errorf("stored reply = %+v", stored)
	}

	if err := f.replies.Delete(author, topic.ID, reply.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, err = f.replies.Update(author, topic.ID, reply.ID, "again")
	assertKind(t, err, KindNotFound, "No such reply")
}

func TestReply_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user("author")
	other := f.user("other")
	reader := f.user("reader")

	public := f.category("Public", false, false)
	private := f.category("Private", true, false)
	f.grant(reader, private, false)

	open := f.topic(author, public, "open", false)
	otherOpen := f.topic(author, public, "other open", false)
	locked := f.topic(author, public, "locked", true)
	secret := f.topic(author, private, "secret", false)
	reply := f.reply(author, open, "mine")

	_, err := f.replies.Create(ctx, author, 9999, "text")
	assertKind(t, err, KindNotFound, "No such topic")

	_, err = f.replies.Create(ctx, author, locked.ID, "text")
	assertKind(t, err, KindForbidden, ReasonTopicReadOnly)

	_, err = f.replies.Create(ctx, reader, secret.ID, "text")
	assertKind(t, err, KindForbidden, ReasonNoWritePermission)

	_, err = f.replies.Create(ctx, author, open.ID, "   ")
	assertKind(t, err, KindValidation, "Reply text is required")

	_, err = f.replies.Update(author, otherOpen.ID, reply.ID, "text")
	assertKind(t, err, KindNotFound, "No such reply")

	_, err = f.replies.Update(other, open.ID, reply.ID, "text")
	assertKind(t, err, KindForbidden, "You can only modify your own replies")

	err = f.replies.Delete(other, open.ID, reply.ID)
	assertKind(t, err, KindForbidden, "You can only modify your own replies")
}
