// Package audit records security-relevant events as JSON lines.
package audit

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"subnet-calculator/pkg/logger"

	"github.com/google/uuid"
)

const (
	ActionAuthenticate = "authenticate"
	ActionLogin        = "login"

	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Event is one audit record. Detail is sanitized before writing so
// credentials never reach the audit stream.
type Event struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor,omitempty"`
	AuthMethod string    `json:"auth_method"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	IP         string    `json:"ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Logger serializes events to a single writer. Safe for concurrent use.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Record stamps and writes the event. A write failure is logged and
// swallowed; auditing never fails the request being audited.
func (l *Logger) Record(event Event) {
	if l == nil || l.w == nil {
		return
	}

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()
	event.Detail = logger.SanitizeLogMessage(event.Detail)

	line, err := json.Marshal(event)
	if err != nil {
		log.Printf("audit: marshal event: %v", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Write(append(line, '\n')); err != nil {
		log.Printf("audit: write event: %v", err)
	}
}
