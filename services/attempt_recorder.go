package services

import (
	"log"
	"sync"
	"time"

	"github.com/asifrahman99/course_bazaar/database"
	"github.com/asifrahman99/course_bazaar/models"
	ws "github.com/asifrahman99/course_bazaar/websocket"
)

// AttemptInput is the partially-filled checkout form a visitor has typed
// so far, captured for sales follow-up.
type AttemptInput struct {
	Email       string
	Phone       string
	FullName    string
	CourseSlug  string
	CourseTitle string
	IPAddress   string
}

type attemptSession struct {
	timer   *time.Timer
	fired   bool
	firedAt time.Time
	latest  AttemptInput
}

// AttemptRecorder debounces checkout-attempt captures per session so one
// row is written after a quiet period instead of one per keystroke, and
// at most one row fires per session while the session is remembered.
// Fired and converted sessions are evicted after the retention window,
// keeping the map bounded; the endpoint is reachable pre-auth, so an
// unbounded map would be a slow leak. Capture failures are logged and
// swallowed; this subsystem must never interrupt a checkout.
type AttemptRecorder struct {
	mu        sync.Mutex
	sessions  map[string]*attemptSession
	debounce  time.Duration
	retention time.Duration
	insert    func(models.CheckoutAttempt) error
}

func NewAttemptRecorder(debounce, retention time.Duration, insert func(models.CheckoutAttempt) error) *AttemptRecorder {
	return &AttemptRecorder{
		sessions:  make(map[string]*attemptSession),
		debounce:  debounce,
		retention: retention,
		insert:    insert,
	}
}

// evictExpired drops fired sessions past the retention window. Callers
// hold r.mu.
func (r *AttemptRecorder) evictExpired(now time.Time) {
	for key, s := range r.sessions {
		if s.fired && now.Sub(s.firedAt) > r.retention {
			delete(r.sessions, key)
		}
	}
}

// Capture records the latest form state for a session and (re)starts the
// debounce timer. After a session has fired once, further captures are
// ignored.
func (r *AttemptRecorder) Capture(sessionKey string, in AttemptInput) {
	if in.Email == "" && in.Phone == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired(time.Now())

	s, ok := r.sessions[sessionKey]
	if !ok {
		s = &attemptSession{}
		r.sessions[sessionKey] = s
	}
	if s.fired {
		return
	}

	s.latest = in
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(r.debounce, func() { r.fire(sessionKey) })
}

// MarkConverted cancels any pending capture for a session. Called when
// the visitor submits a real order or signs in before the timer fires.
func (r *AttemptRecorder) MarkConverted(sessionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired(time.Now())

	s, ok := r.sessions[sessionKey]
	if !ok {
		s = &attemptSession{}
		r.sessions[sessionKey] = s
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.fired = true
	s.firedAt = time.Now()
}

func (r *AttemptRecorder) fire(sessionKey string) {
	r.mu.Lock()
	s, ok := r.sessions[sessionKey]
	if !ok || s.fired {
		r.mu.Unlock()
		return
	}
	s.fired = true
	s.firedAt = time.Now()
	in := s.latest
	r.mu.Unlock()

	attempt := models.CheckoutAttempt{
		Email:       in.Email,
		Phone:       in.Phone,
		FullName:    in.FullName,
		CourseSlug:  in.CourseSlug,
		CourseTitle: in.CourseTitle,
		IPAddress:   in.IPAddress,
	}
	if err := r.insert(attempt); err != nil {
		log.Printf("Failed to record checkout attempt for session %s: %v", sessionKey, err)
	}
}

var (
	defaultRecorder     *AttemptRecorder
	defaultRecorderOnce sync.Once
)

// Recorder returns the shared recorder writing to the database with an
// 8 second quiet period; fired sessions are remembered for 30 minutes.
func Recorder() *AttemptRecorder {
	defaultRecorderOnce.Do(func() {
		defaultRecorder = NewAttemptRecorder(8*time.Second, 30*time.Minute, func(a models.CheckoutAttempt) error {
			if err := database.DB.Create(&a).Error; err != nil {
				return err
			}
			ws.Notify("checkout_attempt", a)
			return nil
		})
	})
	return defaultRecorder
}
