package relay

import (
	"strings"
	"testing"

	"courierbot/internal/event"
)

func TestTagRoutingOrder(t *testing.T) {
	t.Parallel()
	c := NewComposer(nil, "")

	tests := []struct {
		category string
		want     string
	}{
		{"Xbox Series X", "<@&794246049278591007>"},
		{"xbox one", "<@&794246049278591007>"},
		{"PS5", "<@&794245851743518730>"},
		{"PlayStation 4", "<@&794245851743518730>"},
		{"PC Gaming", "<@&794246168288034856>"},
		{"Price Check", "@Mod"},
		{"", "@Mod"},
	}
	for _, tt := range tests {
		if got := c.Tag(tt.category); got != tt.want {
			t.Errorf("Tag(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestTagCustomRules(t *testing.T) {
	t.Parallel()
	c := NewComposer([]RoutingRule{
		{Contains: []string{"switch"}, Tag: "<@&1>"},
		{Contains: []string{"xbox"}, Tag: "<@&2>"},
	}, "@Nobody")

	if got := c.Tag("Nintendo Switch"); got != "<@&1>" {
		t.Fatalf("Tag = %q, want <@&1>", got)
	}
	if got := c.Tag("PlayStation"); got != "@Nobody" {
		t.Fatalf("fallback Tag = %q, want @Nobody", got)
	}
}

func TestNotificationWording(t *testing.T) {
	t.Parallel()
	c := NewComposer(nil, "")
	ev := event.CommentEvent{
		AuthorName: "gamer42",
		Permalink:  "/r/GameSale/comments/abc123/selling_stuff/",
		Category:   "xbox series x",
	}

	got := c.Notification(ev)
	want := "<@&794246049278591007> [u/gamer42](https://www.reddit.com/r/GameSale/comments/abc123/selling_stuff/) " +
		"is requesting courier service. Please react to the message accordingly. " +
		"<:request_completed:803477382156648448> (request completed), " +
		"<:request_inprocess:804224025688801290> (request in process), " +
		"<:request_expired:803477444581523466> (request expired), and " +
		"<:request_rejected:803477462360784927> (request rejected)."
	if got != want {
		t.Fatalf("Notification mismatch:\n got: %s\nwant: %s", got, want)
	}

	// The four progress emotes are what couriers react with; all must be present.
	for _, emote := range []string{emoteCompleted, emoteInProcess, emoteExpired, emoteRejected} {
		if !strings.Contains(got, emote) {
			t.Errorf("notification missing %s", emote)
		}
	}
}

func TestReplyWording(t *testing.T) {
	t.Parallel()
	c := NewComposer(nil, "")

	wantAccepted := "Hi u/gamer42! The bot has successfully sent your courier request. " +
		"A courier will reach out to you in 30 minutes. " +
		"If you don't get a response even after 30 minutes, you may submit another request."
	if got := c.AcceptedReply("gamer42"); got != wantAccepted {
		t.Fatalf("AcceptedReply mismatch:\n got: %s\nwant: %s", got, wantAccepted)
	}

	wantSuppressed := "Hi u/gamer42! The couriers have already been notified for this thread " +
		"less than 30 minutes ago. Please wait for a courier to reach out before " +
		"submitting another request."
	if got := c.SuppressedReply("gamer42"); got != wantSuppressed {
		t.Fatalf("SuppressedReply mismatch:\n got: %s\nwant: %s", got, wantSuppressed)
	}
}
