package store

import (
	"context"
	"sync"
	"time"

	"github.com/JonMunkholm/SponsorDesk/internal/logging"
)

// NoticeLevel is the severity of a user notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a short user-facing message about the outcome of an action.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	At      time.Time   `json:"at"`
}

// Notifier receives user notices.
type Notifier interface {
	Notify(ctx context.Context, level NoticeLevel, message string)
}

// DefaultNoticeCapacity is how many notices a NoticeFeed keeps.
const DefaultNoticeCapacity = 50

// NoticeFeed keeps the most recent notices in memory and logs each one.
type NoticeFeed struct {
	mu       sync.RWMutex
	notices  []Notice
	capacity int
	now      func() time.Time
}

// NewNoticeFeed creates a feed keeping at most capacity notices.
func NewNoticeFeed(capacity int) *NoticeFeed {
	if capacity <= 0 {
		capacity = DefaultNoticeCapacity
	}
	return &NoticeFeed{capacity: capacity, now: time.Now}
}

// Notify records a notice.
func (f *NoticeFeed) Notify(ctx context.Context, level NoticeLevel, message string) {
	logger := logging.FromContext(ctx)
	switch level {
	case NoticeError:
		logger.Error("notice", "message", message)
	case NoticeWarning:
		logger.Warn("notice", "message", message)
	default:
		logger.Info("notice", "message", message)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, Notice{Level: level, Message: message, At: f.now().UTC()})
	if over := len(f.notices) - f.capacity; over > 0 {
		f.notices = append([]Notice(nil), f.notices[over:]...)
	}
}

// Recent returns notices newest first.
func (f *NoticeFeed) Recent() []Notice {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Notice, len(f.notices))
	for i, n := range f.notices {
		out[len(f.notices)-1-i] = n
	}
	return out
}

// Latest returns the newest notice, if any.
func (f *NoticeFeed) Latest() (Notice, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.notices) == 0 {
		return Notice{}, false
	}
	return f.notices[len(f.notices)-1], true
}
