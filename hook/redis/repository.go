package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/marcelsud/hookbin/hook"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of hook.Registry
 * Uses a Hash per hook for its fields and counters, a List per hook for the
 * newest-first delivery log and a Set indexing every registered slug.
 * Writes touching more than one key run as Lua scripts so they are atomic,
 * and detach from caller cancellation once issued.
 */

const (
	hashPrefix = "hook"  // Hash naming: hook:{slug}
	logsSuffix = "logs"  // List naming: hook:{slug}:logs
	indexKey   = "hooks" // Set of every registered slug
)

var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'slug', ARGV[2], 'description', ARGV[3], 'metadata', ARGV[4], 'created_at', ARGV[5], 'hits', 0)
redis.call('DEL', KEYS[2])
redis.call('SADD', KEYS[3], ARGV[2])
return 1
`)

var recordHitScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end
redis.call('HINCRBY', KEYS[1], 'hits', 1)
redis.call('HSET', KEYS[1], 'last_hit', ARGV[2])
redis.call('LPUSH', KEYS[2], ARGV[1])
redis.call('LTRIM', KEYS[2], 0, tonumber(ARGV[3]) - 1)
return redis.call('HGETALL', KEYS[1])
`)

var clearScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end
redis.call('DEL', KEYS[2])
redis.call('HSET', KEYS[1], 'hits', 0)
redis.call('HDEL', KEYS[1], 'last_hit')
return redis.call('HGETALL', KEYS[1])
`)

var deleteScript = redis.NewScript(`
local removed = redis.call('DEL', KEYS[1])
redis.call('DEL', KEYS[2])
redis.call('SREM', KEYS[3], ARGV[1])
return removed
`)

type Repository struct {
	client   *redis.Client
	logLimit int
	now      func() time.Time
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

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a new Redis repository; the connection is checked by Init
func NewRepository(addr, password string, db int, opts ...Option) (*Repository, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	r := &Repository{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		logLimit: hook.DefaultLogLimit,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Init tests the connection and trims logs above the configured limit
func (r *Repository) Init(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("connecting to Redis: %w", err)
	}

	slugs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("listing slugs: %w", err)
	}
	if len(slugs) == 0 {
		return nil
	}
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, slug := range slugs {
			pipe.LTrim(ctx, logsKey(slug), 0, int64(r.logLimit-1))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("trimming logs: %w", err)
	}
	return nil
}

// ListHooks returns every hook without its log
func (r *Repository) ListHooks(ctx context.Context) ([]hook.Summary, error) {
	hooks, err := r.loadAll(ctx, false)
	if err != nil {
		return nil, err
	}
	all := make([]hook.Summary, 0, len(hooks))
	for _, h := range hooks {
		all = append(all, h.Summary())
	}
	hook.SortSummaries(all)
	return all, nil
}

// ListRecentEntries merges every log into one feed, newest first
func (r *Repository) ListRecentEntries(ctx context.Context, limit int) ([]hook.RecentEntry, error) {
	hooks, err := r.loadAll(ctx, true)
	if err != nil {
		return nil, err
	}
	return hook.RecentEntries(hooks, limit), nil
}

// GetHook reads the hash and the log in one transaction
func (r *Repository) GetHook(ctx context.Context, slug string) (hook.Hook, error) {
	var fields *redis.MapStringStringCmd
	var logs *redis.StringSliceCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		fields = pipe.HGetAll(ctx, hashKey(slug))
		logs = pipe.LRange(ctx, logsKey(slug), 0, -1)
		return nil
	})
	if err != nil {
		return hook.Hook{}, fmt.Errorf("getting hook: %w", err)
	}
	if len(fields.Val()) == 0 {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}

	h, err := parseHook(fields.Val())
	if err != nil {
		return hook.Hook{}, err
	}
	if h.Logs, err = parseEntries(logs.Val()); err != nil {
		return hook.Hook{}, err
	}
	return h, nil
}

// GetStats aggregates counters over every stored hook
func (r *Repository) GetStats(ctx context.Context) (hook.Stats, error) {
	hooks, err := r.loadAll(ctx, true)
	if err != nil {
		return hook.Stats{}, err
	}
	return hook.ComputeStats(hooks, r.now()), nil
}

// CreateHook registers a new slug, failing with hook.ErrConflict if it exists
func (r *Repository) CreateHook(ctx context.Context, opts hook.CreateOptions) (hook.Hook, error) {
	ctx = context.WithoutCancel(ctx)
	h := hook.Hook{
		ID:          uuid.New().String(),
		Slug:        opts.Slug,
		Description: opts.Description,
		Metadata:    hook.CloneMetadata(opts.Metadata),
		CreatedAt:   r.now().UTC(),
		Logs:        []hook.Entry{},
	}
	metadata, err := json.Marshal(h.Metadata)
	if err != nil {
		return hook.Hook{}, fmt.Errorf("marshaling metadata: %w", err)
	}

	created, err := createScript.Run(ctx, r.client,
		[]string{hashKey(h.Slug), logsKey(h.Slug), indexKey},
		h.ID, h.Slug, h.Description, string(metadata), formatTime(h.CreatedAt),
	).Int()
	if err != nil {
		return hook.Hook{}, fmt.Errorf("creating hook: %w", err)
	}
	if created == 0 {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrConflict, h.Slug)
	}
	return h, nil
}

// DeleteHook removes the hook, its log and its index entry
func (r *Repository) DeleteHook(ctx context.Context, slug string) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	removed, err := deleteScript.Run(ctx, r.client,
		[]string{hashKey(slug), logsKey(slug), indexKey},
		slug,
	).Int()
	if err != nil {
		return false, fmt.Errorf("deleting hook: %w", err)
	}
	return removed > 0, nil
}

// RecordHit counts the delivery and pushes entry onto the capped log atomically
func (r *Repository) RecordHit(ctx context.Context, slug string, entry hook.Entry) (hook.Summary, error) {
	ctx = context.WithoutCancel(ctx)
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return hook.Summary{}, fmt.Errorf("marshaling entry: %w", err)
	}

	res, err := recordHitScript.Run(ctx, r.client,
		[]string{hashKey(slug), logsKey(slug)},
		string(data), formatTime(entry.Timestamp), r.logLimit,
	).StringSlice()
	if errors.Is(err, redis.Nil) {
		return hook.Summary{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	if err != nil {
		return hook.Summary{}, fmt.Errorf("recording hit: %w", err)
	}

	h, err := parseHook(pairs(res))
	if err != nil {
		return hook.Summary{}, err
	}
	return h.Summary(), nil
}

// ClearLogs drops the log and zeroes the counters
func (r *Repository) ClearLogs(ctx context.Context, slug string) (hook.Hook, error) {
	ctx = context.WithoutCancel(ctx)
	res, err := clearScript.Run(ctx, r.client,
		[]string{hashKey(slug), logsKey(slug)},
	).StringSlice()
	if errors.Is(err, redis.Nil) {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	if err != nil {
		return hook.Hook{}, fmt.Errorf("clearing logs: %w", err)
	}

	h, err := parseHook(pairs(res))
	if err != nil {
		return hook.Hook{}, err
	}
	h.Logs = []hook.Entry{}
	return h, nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

// loadAll reads every indexed hook, with logs when withLogs is set
func (r *Repository) loadAll(ctx context.Context, withLogs bool) ([]hook.Hook, error) {
	slugs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing slugs: %w", err)
	}
	if len(slugs) == 0 {
		return []hook.Hook{}, nil
	}

	fields := make([]*redis.MapStringStringCmd, len(slugs))
	logs := make([]*redis.StringSliceCmd, len(slugs))
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, slug := range slugs {
			fields[i] = pipe.HGetAll(ctx, hashKey(slug))
			if withLogs {
				logs[i] = pipe.LRange(ctx, logsKey(slug), 0, -1)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading hooks: %w", err)
	}

	hooks := make([]hook.Hook, 0, len(slugs))
	for i := range slugs {
		// deleted between SMEMBERS and the transaction
		if len(fields[i].Val()) == 0 {
			continue
		}
		h, err := parseHook(fields[i].Val())
		if err != nil {
			return nil, err
		}
		if withLogs {
			if h.Logs, err = parseEntries(logs[i].Val()); err != nil {
				return nil, err
			}
		}
		hooks = append(hooks, h)
	}
	return hooks, nil
}

func parseHook(data map[string]string) (hook.Hook, error) {
	h := hook.Hook{
		ID:          data["id"],
		Slug:        data["slug"],
		Description: data["description"],
		Metadata:    map[string]any{},
		Hits:        parseInt64(data["hits"]),
		Logs:        []hook.Entry{},
	}
	if raw := data["metadata"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &h.Metadata); err != nil {
			return hook.Hook{}, fmt.Errorf("unmarshaling metadata: %w", err)
		}
		if h.Metadata == nil {
			h.Metadata = map[string]any{}
		}
	}
	createdAt, err := parseTime(data["created_at"])
	if err != nil {
		return hook.Hook{}, fmt.Errorf("parsing created_at: %w", err)
	}
	h.CreatedAt = createdAt
	if raw := data["last_hit"]; raw != "" {
		lastHit, err := parseTime(raw)
		if err != nil {
			return hook.Hook{}, fmt.Errorf("parsing last_hit: %w", err)
		}
		h.LastHit = &lastHit
	}
	return h, nil
}

func parseEntries(raw []string) ([]hook.Entry, error) {
	entries := make([]hook.Entry, 0, len(raw))
	for _, s := range raw {
		var e hook.Entry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("unmarshaling entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// pairs turns a flat HGETALL reply into a map
func pairs(flat []string) map[string]string {
	m := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		m[flat[i]] = flat[i+1]
	}
	return m
}

func hashKey(slug string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, slug)
}

func logsKey(slug string) string {
	return fmt.Sprintf("%s:%s:%s", hashPrefix, slug, logsSuffix)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Helper function to parse int64 from string
func parseInt64(s string) int64 {
	i, _ := strconv.ParseInt(s, 10, 64)
	return i
}
