package mongo

import (
	"time"

	"github.com/marcelsud/hookbin/hook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// hookDocument is the stored shape of a hook; _id is the hook's own UUID
type hookDocument struct {
	ID          string          `bson:"_id"`
	Slug        string          `bson:"slug"`
	Description string          `bson:"description"`
	Metadata    bson.M          `bson:"metadata"`
	CreatedAt   time.Time       `bson:"createdAt"`
	Hits        int64           `bson:"hits"`
	LastHit     *time.Time      `bson:"lastHit"`
	Logs        []entryDocument `bson:"logs,omitempty"`
}

type entryDocument struct {
	ID          string    `bson:"id"`
	Timestamp   time.Time `bson:"timestamp"`
	Body        string    `bson:"body"`
	BodyPreview string    `bson:"bodyPreview"`
	IsJSON      bool      `bson:"isJson"`
	Formatted   string    `bson:"formatted,omitempty"`
	ByteSize    int       `bson:"byteSize"`
}

type statsDocument struct {
	TotalWebhooks int        `bson:"totalWebhooks"`
	TotalHits     int64      `bson:"totalHits"`
	LastHitAt     *time.Time `bson:"lastHitAt"`
	LastCreatedAt *time.Time `bson:"lastCreatedAt"`
	HitsLast24h   int64      `bson:"hitsLast24h"`
}

func newEntryDocument(e hook.Entry) entryDocument {
	return entryDocument{
		ID:          e.ID,
		Timestamp:   e.Timestamp,
		Body:        e.Body,
		BodyPreview: e.BodyPreview,
		IsJSON:      e.IsJSON,
		Formatted:   e.Formatted,
		ByteSize:    e.ByteSize,
	}
}

func (d entryDocument) toEntry() hook.Entry {
	return hook.Entry{
		ID:          d.ID,
		Timestamp:   d.Timestamp.UTC(),
		Body:        d.Body,
		BodyPreview: d.BodyPreview,
		IsJSON:      d.IsJSON,
		Formatted:   d.Formatted,
		ByteSize:    d.ByteSize,
	}
}

// toHook converts to the plain domain value; driver specific types never leave this package
func (d hookDocument) toHook() hook.Hook {
	h := hook.Hook{
		ID:          d.ID,
		Slug:        d.Slug,
		Description: d.Description,
		Metadata:    sanitizeMap(d.Metadata),
		CreatedAt:   d.CreatedAt.UTC(),
		Hits:        d.Hits,
		Logs:        make([]hook.Entry, 0, len(d.Logs)),
	}
	if d.LastHit != nil {
		t := d.LastHit.UTC()
		h.LastHit = &t
	}
	for _, e := range d.Logs {
		h.Logs = append(h.Logs, e.toEntry())
	}
	return h
}

func (d statsDocument) toStats() hook.Stats {
	st := hook.Stats{
		TotalWebhooks: d.TotalWebhooks,
		TotalHits:     d.TotalHits,
		HitsLast24h:   d.HitsLast24h,
	}
	if d.LastHitAt != nil {
		t := d.LastHitAt.UTC()
		st.LastHitAt = &t
	}
	if d.LastCreatedAt != nil {
		t := d.LastCreatedAt.UTC()
		st.LastCreatedAt = &t
	}
	return st
}

// sanitizeMap rewrites a decoded document into plain maps, slices and scalars
func sanitizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = sanitize(v)
	}
	return out
}

func sanitize(v any) any {
	switch t := v.(type) {
	case primitive.M:
		return sanitizeMap(t)
	case map[string]any:
		return sanitizeMap(t)
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = sanitize(e.Value)
		}
		return out
	case primitive.A:
		return sanitizeSlice(t)
	case []any:
		return sanitizeSlice(t)
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case int32:
		return int64(t)
	default:
		return v
	}
}

func sanitizeSlice(s []any) []any {
	out := make([]any, len(s))
	for i := range s {
		out[i] = sanitize(s[i])
	}
	return out
}
