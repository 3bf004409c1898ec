package settings

import "context"

// Repo is the storage contract for the settings singleton. Get returns the
// oldest row so that at most one row is ever observable, even if a concurrent
// seed briefly created a second.
type Repo interface {
	Get(ctx context.Context) (AppSettings, error)
	Insert(ctx context.Context, s AppSettings) (AppSettings, error)
	Update(ctx context.Context, s AppSettings) error
	// Reset drops every row and installs the given settings as the only one.
	Reset(ctx context.Context, s AppSettings) (AppSettings, error)
}
