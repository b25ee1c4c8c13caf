package relay

import "errors"

var (
	// ErrStoreUnavailable wraps suppression store read/write failures.
	ErrStoreUnavailable = errors.New("suppression store unavailable")
	// ErrDeliveryFailed wraps webhook POST failures (transport error or
	// non-2xx status). No marker is written and no reply is sent, so the
	// requester may legitimately retry.
	ErrDeliveryFailed = errors.New("webhook delivery failed")
	// ErrReplyFailed wraps failures to post the acknowledgment or
	// suppression comment. On the accepted path it does not undo the
	// already-delivered notification or the marker write.
	ErrReplyFailed = errors.New("comment reply failed")
)
