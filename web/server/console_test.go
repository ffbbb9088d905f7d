package server

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	// Create a channel to receive console messages
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != LevelInfo {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render id 'test-render-123', got '%s'", msg.RenderID)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_ServerLogTaggedWithRenderID(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(previous)

	logger := NewWebLogger("render-42", nil)
	logger.Printf("Rendering %dx%d with %d workers\n", 64, 48, 2)

	line := buf.String()
	if !strings.Contains(line, "[render-42] info: Rendering 64x48 with 2 workers") {
		t.Errorf("Expected tagged log line, got %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("Expected a single log line, got %q", line)
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	// Collect all messages
	var receivedMessages []string
	timeout := time.After(200 * time.Millisecond)
	for i := 0; i < len(messages); i++ {
		select {
		case msg := <-messageChan:
			receivedMessages = append(receivedMessages, msg.Message)
		case <-timeout:
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}

	if len(receivedMessages) != len(messages) {
		t.Fatalf("Expected %d messages, got %d", len(messages), len(receivedMessages))
	}

	for i, expected := range messages {
		expectedWithNewline := expected + "\n"
		if receivedMessages[i] != expectedWithNewline {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expectedWithNewline, receivedMessages[i])
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	// Create a small channel that will fill up
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	logger.Printf("Message 1\n")
	// These must not block even though the channel is full
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	msg := <-messageChan
	if msg.Message != "Message 1\n" {
		t.Errorf("Expected the first message to be kept, got %q", msg.Message)
	}
	select {
	case extra := <-messageChan:
		t.Errorf("Expected later messages to be dropped, got %q", extra.Message)
	default:
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)

	// This should not panic
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_MessageLevels(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"plain progress", "Rendering 1024x768 with 8 workers\n", LevelInfo},
		{"warning prefix", "Warning: failed to parse metadata\n", LevelWarning},
		{"error prefix", "Error loading scene: missing file\n", LevelError},
		{"case insensitive", "  ERROR: bad radius\n", LevelError},
		{"word inside message", "Render completed with 0 errors\n", LevelInfo},
	}

	messageChan := make(chan ConsoleMessage, len(tests))
	logger := NewWebLogger("test-render-levels", messageChan)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.Printf("%s", tt.message)
			msg := <-messageChan
			if msg.Level != tt.expected {
				t.Errorf("Expected level %q for %q, got %q", tt.expected, tt.message, msg.Level)
			}
		})
	}
}
