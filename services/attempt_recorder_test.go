package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/stretchr/testify/assert"
)

type attemptSink struct {
	mu       sync.Mutex
	attempts []models.CheckoutAttempt
}

func (s *attemptSink) insert(a models.CheckoutAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, a)
	return nil
}

func (s *attemptSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}

func TestAttemptRecorder_DebouncesToSingleRow(t *testing.T) {
	sink := &attemptSink{}
	recorder := services.NewAttemptRecorder(20*time.Millisecond, time.Minute, sink.insert)

	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com"})
	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com", Phone: "017"})
	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com", Phone: "01712345678"})

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, sink.count())
	sink.mu.Lock()
	assert.Equal(t, "01712345678", sink.attempts[0].Phone)
	sink.mu.Unlock()
}

func TestAttemptRecorder_OneShotPerSession(t *testing.T) {
	sink := &attemptSink{}
	recorder := services.NewAttemptRecorder(10*time.Millisecond, time.Minute, sink.insert)

	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com"})
	time.Sleep(60 * time.Millisecond)

	recorder.Capture("session-1", services.AttemptInput{Email: "edited@b.com"})
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 1, sink.count())
}

func TestAttemptRecorder_ConvertedBeforeFireWritesNothing(t *testing.T) {
	sink := &attemptSink{}
	recorder := services.NewAttemptRecorder(30*time.Millisecond, time.Minute, sink.insert)

	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com"})
	recorder.MarkConverted("session-1")

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 0, sink.count())
}

func TestAttemptRecorder_RequiresEmailOrPhone(t *testing.T) {
	sink := &attemptSink{}
	recorder := services.NewAttemptRecorder(10*time.Millisecond, time.Minute, sink.insert)

	recorder.Capture("session-1", services.AttemptInput{FullName: "No Contact"})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 0, sink.count())
}

func TestAttemptRecorder_FiredSessionsEvictedAfterRetention(t *testing.T) {
	sink := &attemptSink{}
	recorder := services.NewAttemptRecorder(10*time.Millisecond, 200*time.Millisecond, sink.insert)

	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, sink.count())

	// Inside the retention window the one-shot guard still holds.
	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, sink.count())

	// Past the window the fired entry is gone, so the session no longer
	// occupies memory; a fresh capture behaves like a new session.
	time.Sleep(200 * time.Millisecond)
	recorder.Capture("session-1", services.AttemptInput{Email: "a@b.com"})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, sink.count())
}

func TestAttemptRecorder_SessionsAreIndependent(t *testing.T) {
	sink := &attemptSink{}
	recorder := services.NewAttemptRecorder(10*time.Millisecond, time.Minute, sink.insert)

	recorder.Capture("session-1", services.AttemptInput{Email: "one@b.com"})
	recorder.Capture("session-2", services.AttemptInput{Email: "two@b.com"})

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 2, sink.count())
}
