package hook

import "time"

/* Hook represents a registered capture endpoint and everything delivered to it
 * Uses value semantics as it represents data, not behavior
 */
type Hook struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
	Hits        int64          `json:"hits"`
	LastHit     *time.Time     `json:"lastHit"`
	Logs        []Entry        `json:"logs"`
}

// Summary is a Hook without its delivery log, used for listings
type Summary struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
	Hits        int64          `json:"hits"`
	LastHit     *time.Time     `json:"lastHit"`
}

// CreateOptions carries the operator supplied fields of a new hook
type CreateOptions struct {
	Slug        string
	Description string
	Metadata    map[string]any
}

// Summary drops the delivery log
func (h Hook) Summary() Summary {
	c := h.Clone()
	return Summary{
		ID:          c.ID,
		Slug:        c.Slug,
		Description: c.Description,
		Metadata:    c.Metadata,
		CreatedAt:   c.CreatedAt,
		Hits:        c.Hits,
		LastHit:     c.LastHit,
	}
}

// Clone returns a deep copy that shares no memory with h
func (h Hook) Clone() Hook {
	c := h
	c.Metadata = CloneMetadata(h.Metadata)
	if h.LastHit != nil {
		t := *h.LastHit
		c.LastHit = &t
	}
	c.Logs = make([]Entry, len(h.Logs))
	copy(c.Logs, h.Logs)
	return c
}

// CloneMetadata deep copies a metadata object, never returning nil
func CloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMetadata(t)
	case []any:
		s := make([]any, len(t))
		for i := range t {
			s[i] = cloneValue(t[i])
		}
		return s
	default:
		return v
	}
}
