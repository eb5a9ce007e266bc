package app

import (
	"context"
	"sync"
	"time"

	"promo_broadcast_bot/internal/domain/recipient"
)

type sentMessage struct {
	To      recipient.ID
	Kind    string // "text" or "album"
	Text    string
	Images  []string
	Caption string
}

// fakeMessenger records every send. Errors can be scripted per recipient and kind.
type fakeMessenger struct {
	mu     sync.Mutex
	sent   []sentMessage
	errFor func(to recipient.ID, kind string, call int) error
	calls  map[recipient.ID]int
}

func (f *fakeMessenger) record(m sentMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[recipient.ID]int)
	}
	f.calls[m.To]++
	if f.errFor != nil {
		if err := f.errFor(m.To, m.Kind, f.calls[m.To]); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMessenger) SendText(_ context.Context, to recipient.ID, text string) error {
	return f.record(sentMessage{To: to, Kind: "text", Text: text})
}

func (f *fakeMessenger) SendAlbum(_ context.Context, to recipient.ID, imagePaths []string, caption string) error {
	return f.record(sentMessage{To: to, Kind: "album", Images: imagePaths, Caption: caption})
}

// fakeClock advances virtual time on Sleep instead of blocking.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  []time.Duration
	onSleep func(n int)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	n := len(c.sleeps)
	hook := c.onSleep
	c.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return ctx.Err()
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}
