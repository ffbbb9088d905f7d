package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-tiny-raytracer/pkg/core"
	"github.com/df07/go-tiny-raytracer/pkg/imageio"
	"github.com/df07/go-tiny-raytracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels   int     `json:"totalPixels"`
	NumWorkers    int     `json:"numWorkers"`
	RaysCast      int     `json:"raysCast"`
	ClippedPixels int     `json:"clippedPixels"`
	MaxChannel    float64 `json:"maxChannel"`
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	webLogger := s.setupConsoleLogging(nil)
	fb, stats, err := s.renderScene(r.Context(), req, webLogger)
	if err != nil {
		writeJSONError(w, renderErrorStatus(err), err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, fb, req.Format); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("X-Render-Time-Ms", fmt.Sprintf("%d", stats.Elapsed.Milliseconds()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene while streaming console output via SSE,
// finishing with a "complete" event that carries the PNG image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)

	// Start single SSE writer goroutine; it drains the channel before the handler returns
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := s.setupConsoleLogging(consoleChan)
	var consoleWG sync.WaitGroup
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	fb, stats, err := s.renderScene(ctx, req, webLogger)

	// The logger is no longer used, so the console stream can finish
	close(consoleChan)
	consoleWG.Wait()

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(fb)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	update := CompleteUpdate{
		ImageData: imageData,
		Width:     fb.Width,
		Height:    fb.Height,
		Stats: Stats{
			TotalPixels:   stats.TotalPixels,
			NumWorkers:    stats.NumWorkers,
			RaysCast:      stats.RaysCast,
			ClippedPixels: stats.ClippedPixels,
			MaxChannel:    stats.MaxChannel,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling complete update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	req.Format = imageio.FormatPNG
	if name := r.URL.Query().Get("format"); name != "" {
		format, err := imageio.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		req.Format = format
	}

	// Performance warning
	if req.Width*req.Height > 1920*1080 {
		log.Printf("Render warning: Large image may render slowly")
	}

	return req, nil
}

// renderScene creates the requested scene and renders it
func (s *Server) renderScene(ctx context.Context, req *RenderRequest, logger core.Logger) (*renderer.Framebuffer, renderer.RenderStats, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	raytracer := renderer.NewRaytracer(sceneObj, renderer.DefaultRenderConfig(), logger)
	return raytracer.Render(ctx)
}

// renderErrorStatus maps a render failure to an HTTP status
func renderErrorStatus(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates a web logger for a render. A nil channel
// logs to the server log only.
func (s *Server) setupConsoleLogging(consoleChan chan ConsoleMessage) core.Logger {
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for event := range sseEventChan {
		// Check if client is still connected before writing
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			// Client disconnected during write
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// imageToBase64PNG converts a framebuffer to base64-encoded PNG
func (s *Server) imageToBase64PNG(fb *renderer.Framebuffer) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, fb, imageio.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
