package session

import (
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a notice stays visible
const DefaultNoticeTTL = 3 * time.Second

// maxNotices bounds the log when nothing prunes it
const maxNotices = 50

// Notice is a transient user-facing message
type Notice struct {
	ID       uint64    `json:"id"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// NoticeLog collects reported messages until they expire.
// It implements domain.Reporter and is safe for concurrent use.
type NoticeLog struct {
	mu      sync.Mutex
	ttl     time.Duration
	notices []Notice
	nextID  uint64
	now     func() time.Time
	onRaise []func(Notice)
}

// NewNoticeLog creates a log whose notices expire after ttl
func NewNoticeLog(ttl time.Duration) *NoticeLog {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &NoticeLog{ttl: ttl, now: time.Now}
}

// OnRaise registers fn to be called for every new notice
func (l *NoticeLog) OnRaise(fn func(Notice)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onRaise = append(l.onRaise, fn)
}

// Report records message as a new notice
func (l *NoticeLog) Report(message string) {
	l.mu.Lock()
	l.nextID++
	n := Notice{ID: l.nextID, Message: message, RaisedAt: l.now()}
	l.notices = append(l.notices, n)
	if len(l.notices) > maxNotices {
		l.notices = append([]Notice(nil), l.notices[len(l.notices)-maxNotices:]...)
	}
	hooks := make([]func(Notice), len(l.onRaise))
	copy(hooks, l.onRaise)
	l.mu.Unlock()

	for _, fn := range hooks {
		fn(n)
	}
}

// Active returns the notices that have not expired, oldest first
func (l *NoticeLog) Active() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.ttl)
	var out []Notice
	for _, n := range l.notices {
		if n.RaisedAt.After(cutoff) {
			out = append(out, n)
		}
	}
	return out
}

// Prune drops expired notices and returns how many were removed
func (l *NoticeLog) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.ttl)
	kept := l.notices[:0]
	for _, n := range l.notices {
		if n.RaisedAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	removed := len(l.notices) - len(kept)
	l.notices = kept
	return removed
}

// Clear drops every notice
func (l *NoticeLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = nil
}

// Len returns the number of stored notices, expired or not
func (l *NoticeLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notices)
}
