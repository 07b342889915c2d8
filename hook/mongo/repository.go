package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/hookbin/hook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/* MongoDB implementation of hook.Registry
 * One document per hook, with its log embedded as an array. Consistency comes
 * from MongoDB's single-document atomic updates: a delivery is one
 * FindOneAndUpdate doing $inc, $set and a bounded $push together.
 * Writes detach from caller cancellation: once issued they run to completion.
 */

const (
	DefaultDatabase   = "hookbin"
	DefaultCollection = "hooks"

	slugIndexName = "slug_unique"
)

// ErrMissingURI is returned when the engine is built without a connection string
var ErrMissingURI = errors.New("mongodb connection string is required")

type Repository struct {
	uri        string
	database   string
	collection string
	logLimit   int
	now        func() time.Time

	mu     sync.Mutex
	client *mongo.Client
	coll   *mongo.Collection
}

// Option configures a Repository
type Option func(*Repository)

// WithDatabase overrides DefaultDatabase
func WithDatabase(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.database = name
		}
	}
}

// WithCollection overrides DefaultCollection
func WithCollection(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.collection = name
		}
	}
}

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

// NewRepository validates configuration; the connection is opened by Init
func NewRepository(uri string, opts ...Option) (*Repository, error) {
	if uri == "" {
		return nil, ErrMissingURI
	}
	r := &Repository{
		uri:        uri,
		database:   DefaultDatabase,
		collection: DefaultCollection,
		logLimit:   hook.DefaultLogLimit,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Init connects, ensures the unique slug index and trims logs above the limit. A second call is a no-op.
func (r *Repository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.coll != nil {
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(r.uri))
	if err != nil {
		return fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("pinging MongoDB: %w", err)
	}

	coll := client.Database(r.database).Collection(r.collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(slugIndexName),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("creating slug index: %w", err)
	}

	// an empty $each with $slice only trims
	_, err = coll.UpdateMany(ctx,
		bson.M{fmt.Sprintf("logs.%d", r.logLimit): bson.M{"$exists": true}},
		bson.M{"$push": bson.M{"logs": bson.M{"$each": bson.A{}, "$slice": r.logLimit}}},
	)
	if err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("trimming logs: %w", err)
	}

	r.client = client
	r.coll = coll
	return nil
}

// ListHooks returns every hook without its log
func (r *Repository) ListHooks(ctx context.Context) ([]hook.Summary, error) {
	coll, err := r.collectionOrErr()
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().
		SetProjection(bson.M{"logs": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "slug", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("finding hooks: %w", err)
	}
	defer cur.Close(ctx)

	all := []hook.Summary{}
	for cur.Next(ctx) {
		var doc hookDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding hook: %w", err)
		}
		all = append(all, doc.toHook().Summary())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterating hooks: %w", err)
	}
	return all, nil
}

// ListRecentEntries unwinds every log server-side and returns the newest entries
func (r *Repository) ListRecentEntries(ctx context.Context, limit int) ([]hook.RecentEntry, error) {
	coll, err := r.collectionOrErr()
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$logs"}},
		{{Key: "$sort", Value: bson.D{{Key: "logs.timestamp", Value: -1}}}},
		{{Key: "$limit", Value: hook.ClampRecentLimit(limit)}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "slug", Value: 1},
			{Key: "entry", Value: "$logs"},
		}}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregating recent entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := []hook.RecentEntry{}
	for cur.Next(ctx) {
		var row struct {
			Slug  string        `bson:"slug"`
			Entry entryDocument `bson:"entry"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decoding recent entry: %w", err)
		}
		entries = append(entries, hook.RecentEntry{Slug: row.Slug, Entry: row.Entry.toEntry()})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent entries: %w", err)
	}
	return entries, nil
}

// GetHook returns one sanitized hook
func (r *Repository) GetHook(ctx context.Context, slug string) (hook.Hook, error) {
	coll, err := r.collectionOrErr()
	if err != nil {
		return hook.Hook{}, err
	}

	var doc hookDocument
	err = coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	if err != nil {
		return hook.Hook{}, fmt.Errorf("finding hook: %w", err)
	}
	return doc.toHook(), nil
}

// GetStats aggregates counters in a single $group stage
func (r *Repository) GetStats(ctx context.Context) (hook.Stats, error) {
	coll, err := r.collectionOrErr()
	if err != nil {
		return hook.Stats{}, err
	}

	since := r.now().Add(-hook.StatsWindow)
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalWebhooks", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalHits", Value: bson.D{{Key: "$sum", Value: "$hits"}}},
			{Key: "lastHitAt", Value: bson.D{{Key: "$max", Value: "$lastHit"}}},
			{Key: "lastCreatedAt", Value: bson.D{{Key: "$max", Value: "$createdAt"}}},
			{Key: "hitsLast24h", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: bson.D{
				{Key: "$filter", Value: bson.D{
					{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$logs", bson.A{}}}}},
					{Key: "as", Value: "entry"},
					{Key: "cond", Value: bson.D{{Key: "$gte", Value: bson.A{"$$entry.timestamp", since}}}},
				}},
			}}}}}},
		}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return hook.Stats{}, fmt.Errorf("aggregating stats: %w", err)
	}
	defer cur.Close(ctx)

	var st statsDocument
	if cur.Next(ctx) {
		if err := cur.Decode(&st); err != nil {
			return hook.Stats{}, fmt.Errorf("decoding stats: %w", err)
		}
	}
	if err := cur.Err(); err != nil {
		return hook.Stats{}, fmt.Errorf("iterating stats: %w", err)
	}
	return st.toStats(), nil
}

// CreateHook inserts the hook, translating a unique index violation into hook.ErrConflict
func (r *Repository) CreateHook(ctx context.Context, opts hook.CreateOptions) (hook.Hook, error) {
	ctx = context.WithoutCancel(ctx)
	coll, err := r.collectionOrErr()
	if err != nil {
		return hook.Hook{}, err
	}

	doc := hookDocument{
		ID:          uuid.New().String(),
		Slug:        opts.Slug,
		Description: opts.Description,
		Metadata:    hook.CloneMetadata(opts.Metadata),
		CreatedAt:   r.now().UTC().Truncate(time.Millisecond),
		Logs:        []entryDocument{},
	}
	_, err = coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrConflict, opts.Slug)
	}
	if err != nil {
		return hook.Hook{}, fmt.Errorf("inserting hook: %w", err)
	}
	return doc.toHook(), nil
}

// DeleteHook removes the document, and with it the embedded log
func (r *Repository) DeleteHook(ctx context.Context, slug string) (bool, error) {
	ctx = context.WithoutCancel(ctx)
	coll, err := r.collectionOrErr()
	if err != nil {
		return false, err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, fmt.Errorf("deleting hook: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// RecordHit counts the delivery and pushes entry to the front of a capped log in one update
func (r *Repository) RecordHit(ctx context.Context, slug string, entry hook.Entry) (hook.Summary, error) {
	ctx = context.WithoutCancel(ctx)
	coll, err := r.collectionOrErr()
	if err != nil {
		return hook.Summary{}, err
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.now().UTC()
	}
	update := bson.M{
		"$inc": bson.M{"hits": 1},
		"$set": bson.M{"lastHit": entry.Timestamp},
		"$push": bson.M{"logs": bson.M{
			"$each":     bson.A{newEntryDocument(entry)},
			"$position": 0,
			"$slice":    r.logLimit,
		}},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"logs": 0})

	var doc hookDocument
	err = coll.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return hook.Summary{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	if err != nil {
		return hook.Summary{}, fmt.Errorf("recording hit: %w", err)
	}
	return doc.toHook().Summary(), nil
}

// ClearLogs empties the log and zeroes counters in one update
func (r *Repository) ClearLogs(ctx context.Context, slug string) (hook.Hook, error) {
	ctx = context.WithoutCancel(ctx)
	coll, err := r.collectionOrErr()
	if err != nil {
		return hook.Hook{}, err
	}

	update := bson.M{"$set": bson.M{
		"logs":    bson.A{},
		"hits":    0,
		"lastHit": nil,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc hookDocument
	err = coll.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return hook.Hook{}, fmt.Errorf("%w: %s", hook.ErrNotFound, slug)
	}
	if err != nil {
		return hook.Hook{}, fmt.Errorf("clearing logs: %w", err)
	}
	return doc.toHook(), nil
}

// Close disconnects the client
func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Disconnect(ctx)
	r.client = nil
	r.coll = nil
	if err != nil {
		return fmt.Errorf("disconnecting from MongoDB: %w", err)
	}
	return nil
}

// GetCollection returns the underlying collection for advanced operations
func (r *Repository) GetCollection() *mongo.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coll
}

func (r *Repository) collectionOrErr() (*mongo.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.coll == nil {
		return nil, errors.New("mongodb registry not initialized")
	}
	return r.coll, nil
}
