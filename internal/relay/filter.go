package relay

import (
	"strings"

	"courierbot/internal/event"
)

// Trigger tokens a comment body must start with (case-folded) to count as
// a courier request.
var triggerTokens = []string{"!courier", "courier!"}

// Flair prefixes (case-folded) that mark a submission as servable.
var validFlairPrefixes = []string{"xbox", "playstation", "pc", "price"}

// Eligible reports whether ev is a courier request the relay should act on.
// Checks run in order and short-circuit; ineligibility is a silent no-op,
// never an error.
func Eligible(ev event.CommentEvent, botUser string) bool {
	// The bot's own comments must never trigger it again.
	if botUser != "" && strings.EqualFold(ev.AuthorName, botUser) {
		return false
	}

	body := strings.ToLower(ev.Body)
	trigger := false
	for _, t := range triggerTokens {
		if strings.HasPrefix(body, t) {
			trigger = true
			break
		}
	}
	if !trigger {
		return false
	}

	flair := strings.ToLower(strings.TrimSpace(ev.Category))
	if flair == "" {
		// No flair selected.
		return false
	}
	for _, p := range validFlairPrefixes {
		if strings.HasPrefix(flair, p) {
			return true
		}
	}
	return false
}
