package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marcelsud/hookbin/hook"
)

/* Hook is a hook declared ahead of its first delivery
 * Applying a seed is idempotent: hooks that already exist are left untouched
 */
type Hook struct {
	Slug        string
	Description string
	Metadata    map[string]any
}

// MaxDescriptionLength matches the limit enforced by the admin API
const MaxDescriptionLength = 500

func newHook(hc HookConfig) *Hook {
	metadata := hc.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Hook{
		Slug:        strings.ToLower(strings.TrimSpace(hc.Slug)),
		Description: strings.TrimSpace(hc.Description),
		Metadata:    metadata,
	}
}

// Validate checks if the hook declaration is valid
func (h *Hook) Validate() error {
	if err := hook.ValidateSlug(h.Slug); err != nil {
		return err
	}
	if len(h.Description) > MaxDescriptionLength {
		return fmt.Errorf("description longer than %d characters for hook %s", MaxDescriptionLength, h.Slug)
	}
	return nil
}

// Apply creates every loaded hook that does not exist yet and returns how many were created
func Apply(ctx context.Context, w hook.Writer, l *Loader) (int, error) {
	created := 0
	for _, h := range l.List() {
		_, err := w.CreateHook(ctx, hook.CreateOptions{
			Slug:        h.Slug,
			Description: h.Description,
			Metadata:    h.Metadata,
		})
		if errors.Is(err, hook.ErrConflict) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seeding hook %s: %w", h.Slug, err)
		}
		created++
	}
	return created, nil
}
