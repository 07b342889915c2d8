package hook

import (
	"context"
	"errors"
	"fmt"
	"time"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the operations exposed to the HTTP layer and the CLI
type UseCase interface {
	Capture(ctx context.Context, slug string, body []byte) (Entry, Summary, error)
	Create(ctx context.Context, opts CreateOptions) (Hook, error)
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, slug string) (Hook, error)
	Delete(ctx context.Context, slug string) error
	Reset(ctx context.Context, slug string) (Hook, error)
	Recent(ctx context.Context, limit int) ([]RecentEntry, error)
	Stats(ctx context.Context) (Stats, error)
}

type Service struct {
	Repo Registry

	// AutoCreate registers unknown slugs on their first delivery
	AutoCreate bool

	Now func() time.Time
}

// NewService creates a new hook service with dependency injection
func NewService(repo Registry) *Service {
	return &Service{
		Repo:       repo,
		AutoCreate: true,
		Now:        time.Now,
	}
}

// Capture records body against slug, creating the hook on first use when AutoCreate is set
func (s *Service) Capture(ctx context.Context, slug string, body []byte) (Entry, Summary, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return Entry{}, Summary{}, err
	}
	entry := NewEntry(body, s.Now())

	sum, err := s.Repo.RecordHit(ctx, slug, entry)
	if err == nil {
		return entry, sum, nil
	}
	if !errors.Is(err, ErrNotFound) || !s.AutoCreate {
		return Entry{}, Summary{}, fmt.Errorf("recording hit: %w", err)
	}

	// a concurrent first delivery may have created it already
	_, err = s.Repo.CreateHook(ctx, CreateOptions{Slug: slug})
	if err != nil && !errors.Is(err, ErrConflict) {
		return Entry{}, Summary{}, fmt.Errorf("creating hook on first delivery: %w", err)
	}

	sum, err = s.Repo.RecordHit(ctx, slug, entry)
	if err != nil {
		return Entry{}, Summary{}, fmt.Errorf("recording hit: %w", err)
	}
	return entry, sum, nil
}

// Create registers a new hook
func (s *Service) Create(ctx context.Context, opts CreateOptions) (Hook, error) {
	if err := ValidateSlug(opts.Slug); err != nil {
		return Hook{}, err
	}
	h, err := s.Repo.CreateHook(ctx, opts)
	if err != nil {
		return Hook{}, fmt.Errorf("creating hook: %w", err)
	}
	return h, nil
}

// List returns every hook without logs
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	all, err := s.Repo.ListHooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hooks: %w", err)
	}
	return all, nil
}

// Get returns one hook with its log
func (s *Service) Get(ctx context.Context, slug string) (Hook, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return Hook{}, err
	}
	h, err := s.Repo.GetHook(ctx, slug)
	if err != nil {
		return Hook{}, fmt.Errorf("getting hook: %w", err)
	}
	return h, nil
}

// Delete removes a hook, returning ErrNotFound when there was nothing to remove
func (s *Service) Delete(ctx context.Context, slug string) error {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return err
	}
	removed, err := s.Repo.DeleteHook(ctx, slug)
	if err != nil {
		return fmt.Errorf("deleting hook: %w", err)
	}
	if !removed {
		return fmt.Errorf("deleting hook: %w: %s", ErrNotFound, slug)
	}
	return nil
}

// Reset clears the log and counters of a hook
func (s *Service) Reset(ctx context.Context, slug string) (Hook, error) {
	slug, err := NormalizeSlug(slug)
	if err != nil {
		return Hook{}, err
	}
	h, err := s.Repo.ClearLogs(ctx, slug)
	if err != nil {
		return Hook{}, fmt.Errorf("clearing logs: %w", err)
	}
	return h, nil
}

// Recent returns the cross-hook delivery feed
func (s *Service) Recent(ctx context.Context, limit int) ([]RecentEntry, error) {
	entries, err := s.Repo.ListRecentEntries(ctx, ClampRecentLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing recent entries: %w", err)
	}
	return entries, nil
}

// Stats returns registry wide counters
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	st, err := s.Repo.GetStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("getting stats: %w", err)
	}
	return st, nil
}
