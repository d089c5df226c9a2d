// Package session keeps the page state of each browser session between
// requests and guards against overlapping page changes from one session.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/pageza/mealfinder/internal/page"
)

// Default lifetimes
const (
	DefaultTTL     = 24 * time.Hour
	DefaultLockTTL = 30 * time.Second
)

var (
	// ErrNotFound is returned when a session has no stored page
	ErrNotFound = errors.New("session not found")
	// ErrBusy is reported when another request of the session is still
	// changing its page
	ErrBusy = errors.New("A request is already in progress")
)

// Store persists pages by session id. The one-shot fields of a page live
// apart from it: PutFlash merges the non-empty fields of f into the pending
// flash and TakeFlash returns and removes it.
type Store interface {
	Load(ctx context.Context, id string) (*page.Page, error)
	Save(ctx context.Context, id string, p *page.Page) error
	PutFlash(ctx context.Context, id string, f page.Flash) error
	TakeFlash(ctx context.Context, id string) (page.Flash, error)
}

// Guard serializes the requests that change a session's page. Acquire
// reports false when another one is running for id.
type Guard interface {
	Acquire(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}
