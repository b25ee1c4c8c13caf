package relay

import (
	"fmt"
	"strings"
	"time"

	"courierbot/internal/event"
)

// CooldownWindow is how long repeated requests for the same thread are
// suppressed, and the response time promised in the acknowledgment reply.
const CooldownWindow = 30 * time.Minute

// Status-indicator emotes couriers react with to mark request progress.
const (
	emoteCompleted = "<:request_completed:803477382156648448>"
	emoteInProcess = "<:request_inprocess:804224025688801290>"
	emoteExpired   = "<:request_expired:803477444581523466>"
	emoteRejected  = "<:request_rejected:803477462360784927>"
)

const redditBase = "https://www.reddit.com"

// RoutingRule maps category-label substrings to the mention tag embedded in
// the outbound notification. Rules are checked in order; first match wins.
type RoutingRule struct {
	Contains []string
	Tag      string
}

// Composer builds the outbound notification and the two reply texts.
// It is pure: no I/O, no randomness; exact wording is contract.
type Composer struct {
	rules    []RoutingRule
	fallback string
}

// DefaultRoutingRules returns the stock courier-channel mention table.
func DefaultRoutingRules() []RoutingRule {
	return []RoutingRule{
		{Contains: []string{"xbox"}, Tag: "<@&794246049278591007>"},
		{Contains: []string{"playstation", "ps"}, Tag: "<@&794245851743518730>"},
		{Contains: []string{"pc"}, Tag: "<@&794246168288034856>"},
	}
}

const DefaultFallbackTag = "@Mod"

// NewComposer builds a Composer. Empty rules/fallback fall back to the
// stock table so a bare config still routes somewhere.
func NewComposer(rules []RoutingRule, fallback string) *Composer {
	if len(rules) == 0 {
		rules = DefaultRoutingRules()
	}
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackTag
	}
	return &Composer{rules: rules, fallback: fallback}
}

// Tag resolves the routing tag for a category label.
func (c *Composer) Tag(category string) string {
	label := strings.ToLower(category)
	for _, r := range c.rules {
		for _, sub := range r.Contains {
			if sub != "" && strings.Contains(label, strings.ToLower(sub)) {
				return r.Tag
			}
		}
	}
	return c.fallback
}

// Notification builds the courier-channel message for an accepted request.
func (c *Composer) Notification(ev event.CommentEvent) string {
	return fmt.Sprintf("%s [u/%s](%s%s) is requesting courier service. "+
		"Please react to the message accordingly. "+
		"%s (request completed), %s (request in process), %s (request expired), and %s (request rejected).",
		c.Tag(ev.Category), ev.AuthorName, redditBase, ev.Permalink,
		emoteCompleted, emoteInProcess, emoteExpired, emoteRejected)
}

// AcceptedReply is the comment posted back to the requester after the
// notification went out.
func (c *Composer) AcceptedReply(authorName string) string {
	return fmt.Sprintf("Hi u/%s! The bot has successfully sent your courier request. "+
		"A courier will reach out to you in 30 minutes. "+
		"If you don't get a response even after 30 minutes, you may submit another request.",
		authorName)
}

// SuppressedReply is the comment posted back when the thread's cool-down
// window is still active.
func (c *Composer) SuppressedReply(authorName string) string {
	return fmt.Sprintf("Hi u/%s! The couriers have already been notified for this thread "+
		"less than 30 minutes ago. Please wait for a courier to reach out before "+
		"submitting another request.",
		authorName)
}
