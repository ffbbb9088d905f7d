package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-tiny-raytracer/pkg/core"
)

// Console message levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one render log line streamed to the client
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger implements core.Logger for one render. Every line goes to the
// server log tagged with the render id, and to the console channel if set.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	level := messageLevel(message)

	log.Printf("[%s] %s: %s", wl.renderID, level, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	// Never block the render on a slow client
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
	}
}

// messageLevel classifies a log line by its leading word
func messageLevel(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	switch {
	case strings.HasPrefix(lower, "error"):
		return LevelError
	case strings.HasPrefix(lower, "warning"):
		return LevelWarning
	default:
		return LevelInfo
	}
}
