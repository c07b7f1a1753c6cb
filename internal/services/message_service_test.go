package services

import (
	"context"
	"testing"
)

func TestMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user("alice")
	bob := f.user("bob")
	carol := f.user("carol")

	first, err := f.messages.Send(ctx, alice, bob.ID, "hi bob")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := f.messages.Send(ctx, bob, alice.ID, "hi alice"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := f.messages.Send(ctx, carol, alice.ID, "hey"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	conversation, err := f.messages.Conversation(alice, bob.ID)
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if len(conversation) != 2 || conversation[0].Text != "hi bob" || conversation[1].Text != "hi alice" {
		t.Errorf("Conversation() = %+v", conversation)
	}

	partners, err := f.messages.Conversations(alice)
	if err != nil {
		t.Fatalf("Conversations() error = %v", err)
	}
	if len(partners) != 2 || partners[0].Username != "bob" || partners[1].Username != "carol" {
		t.Errorf("Conversations() = %+v", partners)
	}

	edited, err := f.messages.UpdateText(alice, first.ID, "hello bob")
	if err != nil {
		t.Fatalf("UpdateText() error = %v", err)
	}
	if edited.Text != "hello bob" {
		t.Errorf("UpdateText() = %+v", edited)
	}

	if got := f.events.keys(); len(got) != 3 {
		t.Errorf("published %d events, want 3", len(got))
	}
}

func TestMessages_Rejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user("alice")
	bob := f.user("bob")
	message, _ := f.messages.Send(ctx, alice, bob.ID, "hi")

	_, err := f.messages.Send(ctx, alice, bob.ID, " ")
	assertKind(t, err, KindValidation, "Message text is required")

	_, err = f.messages.Send(ctx, alice, 9999, "hi")
	assertKind(t, err, KindNotFound, "Receiver not found")

	_, err = f.messages.Send(ctx, alice, alice.ID, "hi")
	assertKind(t, err, KindValidation, "You cannot message yourself")

	_, err = f.messages.UpdateText(alice, 9999, "hi")
	assertKind(t, err, KindNotFound, "No such message")

	_, err = f.messages.UpdateText(bob, message.ID, "mine now")
	assertKind(t, err, KindForbidden, "")
}
