package hook

import "context"

/* Small, focused interfaces following "The Go Way"
 * Every engine (file, mongo, redis) implements Registry, and callers
 * only ever depend on these types, never on a concrete engine
 */

// Reader provides read operations over the registry
type Reader interface {
	// ListHooks returns every hook without its delivery log
	ListHooks(ctx context.Context) ([]Summary, error)
	// ListRecentEntries returns the newest entries across all hooks, limit clamped to [1,100]
	ListRecentEntries(ctx context.Context, limit int) ([]RecentEntry, error)
	// GetHook returns a full copy of the hook or ErrNotFound
	GetHook(ctx context.Context, slug string) (Hook, error)
	GetStats(ctx context.Context) (Stats, error)
}

// Writer provides mutations over the registry
type Writer interface {
	// CreateHook registers a new slug, failing with ErrConflict when it is taken
	CreateHook(ctx context.Context, opts CreateOptions) (Hook, error)
	// DeleteHook removes a hook and its log, reporting whether it existed
	DeleteHook(ctx context.Context, slug string) (bool, error)
	/* RecordHit counts a delivery and prepends entry to the hook log,
	 * evicting the oldest entries beyond the configured limit
	 */
	RecordHit(ctx context.Context, slug string, entry Entry) (Summary, error)
	// ClearLogs empties the log and zeroes the counters, keeping identity and metadata
	ClearLogs(ctx context.Context, slug string) (Hook, error)
}

// Registry is the full store contract shared by every engine
type Registry interface {
	Reader
	Writer
	// Init prepares the backend; it is safe to call more than once
	Init(ctx context.Context) error
	Close(ctx context.Context) error
}
