// Package notify maintains the live notification state: a streaming
// client for the platform's push feed and a reconciled local center
// backing the bell indicator.
package notify

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/log"
	"github.com/neurocron/neurocron/internal/platform"
)

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
	backoffFactor  = 2

	// eventBuffer bounds how far the reader can run ahead of a slow
	// consumer before pushes are dropped.
	eventBuffer = 32
)

// Stream consumes the platform's server-sent notification feed. After a
// successful Connect it reconnects on its own with capped exponential
// backoff until Close is called or the context ends.
type Stream struct {
	client *platform.Client
	orgID  string
	logger *log.Logger

	mu        sync.RWMutex
	connected bool

	events    chan platform.Notification
	cancel    context.CancelFunc
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewStream creates a stream for the organization's notification feed.
func NewStream(client *platform.Client, orgID string, logger *log.Logger) *Stream {
	if logger == nil {
		logger = log.Default()
	}
	return &Stream{
		client: client,
		orgID:  orgID,
		logger: logger.With("component", "notify"),
		events: make(chan platform.Notification, eventBuffer),
	}
}

// Events delivers pushed notifications. The channel closes after Close
// or when the context given to Connect ends.
func (s *Stream) Events() <-chan platform.Notification {
	return s.events
}

// IsConnected reports whether the feed is currently attached.
func (s *Stream) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Connect dials the feed and starts the reader. The initial connection
// failure is returned to the caller; once connected, later drops are
// handled internally by reconnecting.
func (s *Stream) Connect(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	body, err := s.dial(runCtx)
	if err != nil {
		cancel()
		return errors.NewStreamConnectError(err)
	}

	s.cancel = cancel
	s.wg.Add(1)
	go s.run(runCtx, body)
	return nil
}

// Close tears down the connection and stops the reconnect loop. Safe to
// call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
		s.wg.Wait()
	})
}

// run owns the read-reconnect cycle. The events channel closes when it
// returns, so consumers ranging over Events terminate cleanly.
func (s *Stream) run(ctx context.Context, body io.ReadCloser) {
	defer s.wg.Done()
	defer close(s.events)

	backoff := initialBackoff
	for {
		if body != nil {
			s.setConnected(true)
			s.readLoop(ctx, body)
			s.setConnected(false)
			body = nil
			backoff = initialBackoff
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		next, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("notification stream reconnect failed",
				"error", err, "retry_in", backoff.String())
			backoff *= backoffFactor
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		body = next
	}
}

func (s *Stream) dial(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.OpenNotificationStream(ctx, s.orgID)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// readLoop parses event:/data: line pairs until the connection drops or
// the context ends. Cancelling the dial context aborts the body read,
// so no separate watchdog is needed.
func (s *Stream) readLoop(ctx context.Context, body io.ReadCloser) {
	defer body.Close()

	scanner := bufio.NewScanner(body)
	var eventType, data string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			s.handleEvent(eventType, data)
			eventType, data = "", ""
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case strings.HasPrefix(line, ":"):
			// Comment line, used by the server as a keepalive.
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.logger.Warn("notification stream read error", "error", err)
	}
}

func (s *Stream) handleEvent(eventType, data string) {
	switch eventType {
	case "notification":
		var n platform.Notification
		if err := json.Unmarshal([]byte(data), &n); err != nil {
			s.logger.Warn("failed to decode notification event", "error", err)
			return
		}
		select {
		case s.events <- n:
		default:
			s.logger.Warn("notification dropped, consumer too slow", "id", n.ID)
		}

	case "ping":
		// Keepalive only.

	default:
		s.logger.Debug("ignoring stream event", "type", eventType)
	}
}

func (s *Stream) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}
