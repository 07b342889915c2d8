package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/marcelsud/hookbin/hook"
	"github.com/rs/zerolog"
)

/* File implementation of hook.Registry
 * The whole registry lives in memory and is mirrored to a single pretty-printed
 * JSON document. Memory is authoritative; the document follows it through a
 * coalescing flusher so bursts of deliveries cost a bounded number of writes.
 * Single process only: two processes sharing a file will overwrite each other.
 */

// ErrNotInitialized is returned by mutations issued before Init has loaded the document
var ErrNotInitialized = errors.New("file registry not initialized")

// document is the on-disk shape: { "hooks": { <slug>: <hook> } }
type document struct {
	Hooks map[string]*hook.Hook `json:"hooks"`
}

type Repository struct {
	path     string
	logLimit int
	logger   zerolog.Logger
	now      func() time.Time

	mu    sync.RWMutex
	hooks map[string]*hook.Hook
	ready bool

	// flusher state: idle (!flushing), flushing, flushing with pending
	flushMu   sync.Mutex
	flushed   *sync.Cond
	flushing  bool
	pending   bool
	requested uint64
	completed uint64
	wg        sync.WaitGroup

	writes      atomic.Uint64
	beforeWrite func()
}

// Option configures a Repository
type Option func(*Repository)

// WithLogLimit sets how many entries each hook keeps
func WithLogLimit(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.logLimit = n
		}
	}
}

// WithLogger sets the logger used to report flush failures
func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a file backed registry; nothing is read until Init
func NewRepository(path string, opts ...Option) (*Repository, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	r := &Repository{
		path:     path,
		logLimit: hook.DefaultLogLimit,
		logger:   zerolog.Nop(),
		now:      time.Now,
		hooks:    make(map[string]*hook.Hook),
	}
	r.flushed = sync.NewCond(&r.flushMu)
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Init loads the backing document, creating an empty one when it does not exist
func (r *Repository) Init(ctx context.Context) error {
	r.mu.Lock()
	if r.ready {
		r.mu.Unlock()
		return nil
	}

	data, err := os.ReadFile(r.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.hooks = make(map[string]*hook.Hook)
		r.ready = true
		r.mu.Unlock()
		if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		if err := r.write(); err != nil {
			return fmt.Errorf("writing empty registry: %w", err)
		}
		return nil
	case err != nil:
		r.mu.Unlock()
		return fmt.Errorf("reading registry file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("parsing registry file %s: %w", r.path, err)
	}
	trimmed := r.normalize(&doc)
	r.hooks = doc.Hooks
	r.ready = true
	r.mu.Unlock()

	if trimmed > 0 {
		r.logger.Info().Int("hooks", trimmed).Int("log_limit", r.logLimit).Msg("trimmed logs above the configured limit")
		r.persist()
	}
	return nil
}

// normalize repairs partial documents and returns how many hooks had their logs trimmed
func (r *Repository) normalize(doc *document) int {
	if doc.Hooks == nil {
		doc.Hooks = make(map[string]*hook.Hook)
	}
	trimmed := 0
	for slug, h := range doc.Hooks {
		if h == nil {
			delete(doc.Hooks, slug)
			continue
		}
		h.Slug = slug
		if h.Metadata == nil {
			h.Metadata = map[string]any{}
		}
		if h.Logs == nil {
			h.Logs = []hook.Entry{}
		}
		if len(h.Logs) > r.logLimit {
			h.Logs = h.Logs[:r.logLimit]
			trimmed++
		}
	}
	return trimmed
}

// ListHooks returns every hook without its log
func (r *Repository) ListHooks(ctx context.Context) ([]hook.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]hook.Summary, 0, len(r.hooks))
	for _, h := range r.hooks {
		all = append(all, h.Summary())
	}
	hook.SortSummaries(all)
	return all, nil
}

// ListRecentEntries flattens every log into one feed, newest first
func (r *Repository) ListRecentEntries(ctx context.Context, limit int) ([]hook.RecentEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return hook.RecentEntries(r.values(), limit), nil
}

// GetHook returns a deep copy of the hook
func (r *Repository) GetHook(ctx context.Context, slug string) (hook.Hook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hooks[slug]
	if !ok {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	return h.Clone(), nil
}

// GetStats aggregates counters over the in-memory registry
func (r *Repository) GetStats(ctx context.Context) (hook.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return hook.ComputeStats(r.values(), r.now()), nil
}

// CreateHook registers a new slug and waits for it to reach disk
func (r *Repository) CreateHook(ctx context.Context, opts hook.CreateOptions) (hook.Hook, error) {
	r.mu.Lock()
	if !r.ready {
		r.mu.Unlock()
		return hook.Hook{}, ErrNotInitialized
	}
	if _, exists := r.hooks[opts.Slug]; exists {
		r.mu.Unlock()
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrConflict, opts.Slug)
	}
	h := &hook.Hook{
		ID:          uuid.New().String(),
		Slug:        opts.Slug,
		Description: opts.Description,
		Metadata:    hook.CloneMetadata(opts.Metadata),
		CreatedAt:   r.now().UTC(),
		Logs:        []hook.Entry{},
	}
	r.hooks[h.Slug] = h
	created := h.Clone()
	r.mu.Unlock()

	r.persist()
	return created, nil
}

// DeleteHook removes the hook and its log; disk is only touched when something was removed
func (r *Repository) DeleteHook(ctx context.Context, slug string) (bool, error) {
	r.mu.Lock()
	if !r.ready {
		r.mu.Unlock()
		return false, ErrNotInitialized
	}
	_, ok := r.hooks[slug]
	if ok {
		delete(r.hooks, slug)
	}
	r.mu.Unlock()

	if ok {
		r.persist()
	}
	return ok, nil
}

// RecordHit applies the delivery in memory and schedules a flush without waiting for it
func (r *Repository) RecordHit(ctx context.Context, slug string, entry hook.Entry) (hook.Summary, error) {
	r.mu.Lock()
	if !r.ready {
		r.mu.Unlock()
		return hook.Summary{}, ErrNotInitialized
	}
	h, ok := r.hooks[slug]
	if !ok {
		r.mu.Unlock()
		return hook.Summary{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	at := entry.Timestamp
	if at.IsZero() {
		at = r.now().UTC()
		entry.Timestamp = at
	}
	h.Hits++
	h.LastHit = &at
	h.Logs = hook.PrependEntry(h.Logs, entry, r.logLimit)
	sum := h.Summary()
	r.mu.Unlock()

	r.requestFlush()
	return sum, nil
}

// ClearLogs resets the log and counters and waits for the change to reach disk
func (r *Repository) ClearLogs(ctx context.Context, slug string) (hook.Hook, error) {
	r.mu.Lock()
	if !r.ready {
		r.mu.Unlock()
		return hook.Hook{}, ErrNotInitialized
	}
	h, ok := r.hooks[slug]
	if !ok {
		r.mu.Unlock()
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	h.Logs = []hook.Entry{}
	h.Hits = 0
	h.LastHit = nil
	cleared := h.Clone()
	r.mu.Unlock()

	r.persist()
	return cleared, nil
}

// Flush blocks until everything mutated so far has been written (or failed and been logged)
func (r *Repository) Flush(ctx context.Context) error {
	r.flushMu.Lock()
	gen := r.requested
	r.flushMu.Unlock()
	r.wait(gen)
	return nil
}

// Close waits for in-flight flushes to finish
func (r *Repository) Close(ctx context.Context) error {
	if err := r.Flush(ctx); err != nil {
		return err
	}
	r.wg.Wait()
	return nil
}

// Path returns the backing document location
func (r *Repository) Path() string {
	return r.path
}

// values must be called with mu held
func (r *Repository) values() []hook.Hook {
	all := make([]hook.Hook, 0, len(r.hooks))
	for _, h := range r.hooks {
		all = append(all, *h)
	}
	return all
}

// persist schedules a flush and waits until one covering the current state completes
func (r *Repository) persist() {
	r.wait(r.requestFlush())
}

/* requestFlush moves the flusher out of idle, or marks it pending when a write
 * is already in flight. It returns the generation the caller can wait on.
 */
func (r *Repository) requestFlush() uint64 {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	r.requested++
	gen := r.requested
	if r.flushing {
		r.pending = true
		return gen
	}
	r.flushing = true
	r.wg.Add(1)
	go r.flushLoop()
	return gen
}

func (r *Repository) flushLoop() {
	defer r.wg.Done()

	for {
		r.flushMu.Lock()
		gen := r.requested
		r.pending = false
		r.flushMu.Unlock()

		if err := r.write(); err != nil {
			r.logger.Error().Err(err).Str("path", r.path).Msg("flushing registry to disk")
		}

		r.flushMu.Lock()
		r.completed = gen
		r.flushed.Broadcast()
		if !r.pending {
			r.flushing = false
			r.flushMu.Unlock()
			return
		}
		r.flushMu.Unlock()
	}
}

func (r *Repository) wait(gen uint64) {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()
	for r.completed < gen {
		r.flushed.Wait()
	}
}

// write snapshots memory and replaces the document through a temp file and rename
func (r *Repository) write() error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}

	r.mu.RLock()
	data, err := json.MarshalIndent(document{Hooks: r.hooks}, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing registry file: %w", err)
	}
	r.writes.Add(1)
	return nil
}
