package hook

import (
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/hookbin/hook/payload"
)

/* Entry is the stored record of one accepted delivery
 * Body is the delivery as text (invalid UTF-8 repaired); the other fields are derived at capture time
 */
type Entry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Body        string    `json:"body"`
	BodyPreview string    `json:"bodyPreview"`
	IsJSON      bool      `json:"isJson"`
	Formatted   string    `json:"formatted,omitempty"`
	ByteSize    int       `json:"byteSize"`
}

// RecentEntry is an Entry in the cross-hook feed, tagged with its hook
type RecentEntry struct {
	Slug string `json:"slug"`
	Entry
}

// NewEntry captures body as an Entry stamped with now
func NewEntry(body []byte, now time.Time) Entry {
	in := payload.Inspect(body)
	return Entry{
		ID:          uuid.New().String(),
		Timestamp:   now.UTC(),
		Body:        payload.Text(body),
		BodyPreview: in.Preview,
		IsJSON:      in.IsJSON,
		Formatted:   in.Formatted,
		ByteSize:    in.ByteSize,
	}
}

// PrependEntry puts e in front of logs and keeps at most limit entries
func PrependEntry(logs []Entry, e Entry, limit int) []Entry {
	n := len(logs) + 1
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]Entry, 0, n)
	out = append(out, e)
	for _, l := range logs {
		if len(out) == n {
			break
		}
		out = append(out, l)
	}
	return out
}
