package notify

import (
	"context"
	"sync"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/log"
	"github.com/neurocron/neurocron/internal/platform"
)

// recentWindow is the display cap for the bell dropdown; List is the
// escape hatch for everything else.
const recentWindow = 10

// Center is the local reconciled notification state. The ordered list
// is most-recent-first; mutations call the platform first and change
// local state only after the server confirms.
type Center struct {
	client *platform.Client
	orgID  string
	logger *log.Logger

	mu        sync.RWMutex
	items     []platform.Notification
	stream    *Stream
	callbacks []func()
}

// NewCenter creates an empty center for the organization.
func NewCenter(client *platform.Client, orgID string, logger *log.Logger) *Center {
	if logger == nil {
		logger = log.Default()
	}
	return &Center{
		client: client,
		orgID:  orgID,
		logger: logger.With("component", "notify"),
	}
}

// Attach wires the live stream whose connectivity the bell mirrors.
func (c *Center) Attach(s *Stream) {
	c.mu.Lock()
	c.stream = s
	c.mu.Unlock()
}

// OnChange registers a callback fired after every accepted mutation.
func (c *Center) OnChange(fn func()) {
	c.mu.Lock()
	c.callbacks = append(c.callbacks, fn)
	c.mu.Unlock()
}

// Load replaces the local list with the server's current view.
func (c *Center) Load(ctx context.Context) error {
	items, err := c.client.ListNotifications(ctx, c.orgID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.notifyChange()
	return nil
}

// Add inserts a pushed notification, newest first. A duplicate ID
// replaces the existing entry in place; the server is authoritative.
func (c *Center) Add(n platform.Notification) {
	c.mu.Lock()
	replaced := false
	for i := range c.items {
		if c.items[i].ID == n.ID {
			c.items[i] = n
			replaced = true
			break
		}
	}
	if !replaced {
		c.items = append([]platform.Notification{n}, c.items...)
	}
	c.mu.Unlock()

	c.notifyChange()
}

// MarkRead marks one notification read. The flag flips only after the
// server accepts; marking an already-read notification is a no-op for
// the unread count.
func (c *Center) MarkRead(ctx context.Context, id string) error {
	if !c.has(id) {
		return errors.NewNotificationNotFoundError(id)
	}

	if err := c.client.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	changed := false
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id && !c.items[i].Read {
			c.items[i].Read = true
			changed = true
			break
		}
	}
	c.mu.Unlock()

	if changed {
		c.notifyChange()
	}
	return nil
}

// MarkAllRead marks every notification read after server confirmation.
func (c *Center) MarkAllRead(ctx context.Context) error {
	if err := c.client.MarkAllNotificationsRead(ctx, c.orgID); err != nil {
		return err
	}

	changed := false
	c.mu.Lock()
	for i := range c.items {
		if !c.items[i].Read {
			c.items[i].Read = true
			changed = true
		}
	}
	c.mu.Unlock()

	if changed {
		c.notifyChange()
	}
	return nil
}

// Delete removes a notification after server confirmation.
func (c *Center) Delete(ctx context.Context, id string) error {
	if !c.has(id) {
		return errors.NewNotificationNotFoundError(id)
	}

	if err := c.client.DeleteNotification(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.notifyChange()
	return nil
}

// List returns a snapshot of all notifications, most recent first.
func (c *Center) List() []platform.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]platform.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Recent returns the display window: the ten most recent notifications.
func (c *Center) Recent() []platform.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := len(c.items)
	if n > recentWindow {
		n = recentWindow
	}
	out := make([]platform.Notification, n)
	copy(out, c.items[:n])
	return out
}

// Unread returns the number of unread notifications.
func (c *Center) Unread() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for i := range c.items {
		if !c.items[i].Read {
			count++
		}
	}
	return count
}

// Connected reports whether the attached stream is live.
func (c *Center) Connected() bool {
	c.mu.RLock()
	s := c.stream
	c.mu.RUnlock()
	return s != nil && s.IsConnected()
}

func (c *Center) has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.items[i].ID == id {
			return true
		}
	}
	return false
}

// notifyChange fires the registered callbacks outside the lock so they
// may query the center freely.
func (c *Center) notifyChange() {
	c.mu.RLock()
	callbacks := make([]func(), len(c.callbacks))
	copy(callbacks, c.callbacks)
	c.mu.RUnlock()

	for _, fn := range callbacks {
		fn()
	}
}
