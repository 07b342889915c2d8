package registry

import (
	"errors"
	"fmt"

	"github.com/marcelsud/hookbin/hook"
	"github.com/marcelsud/hookbin/hook/file"
	"github.com/marcelsud/hookbin/hook/mongo"
	"github.com/marcelsud/hookbin/hook/redis"
	"github.com/rs/zerolog"
)

// ErrNoBackend is returned when Options names no storage at all
var ErrNoBackend = errors.New("no registry backend configured")

// Options selects and configures one engine. The first non-empty location wins: MongoURI, RedisAddr, FilePath.
type Options struct {
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FilePath string

	LogLimit int
	Logger   zerolog.Logger
}

// Backend names the engine Options resolves to
func (o Options) Backend() string {
	switch {
	case o.MongoURI != "":
		return "mongodb"
	case o.RedisAddr != "":
		return "redis"
	case o.FilePath != "":
		return "file"
	default:
		return ""
	}
}

/* New builds the selected engine without initializing it
 * Callers must Init the result; a failing remote backend is reported, never replaced
 * by another engine.
 */
func New(opts Options) (hook.Registry, error) {
	limit := opts.LogLimit
	if limit <= 0 {
		limit = hook.DefaultLogLimit
	}

	switch opts.Backend() {
	case "mongodb":
		repo, err := mongo.NewRepository(opts.MongoURI,
			mongo.WithDatabase(opts.MongoDatabase),
			mongo.WithCollection(opts.MongoCollection),
			mongo.WithLogLimit(limit),
		)
		if err != nil {
			return nil, fmt.Errorf("creating mongodb registry: %w", err)
		}
		return repo, nil
	case "redis":
		repo, err := redis.NewRepository(opts.RedisAddr, opts.RedisPassword, opts.RedisDB,
			redis.WithLogLimit(limit),
		)
		if err != nil {
			return nil, fmt.Errorf("creating redis registry: %w", err)
		}
		return repo, nil
	case "file":
		repo, err := file.NewRepository(opts.FilePath,
			file.WithLogLimit(limit),
			file.WithLogger(opts.Logger.With().Str("backend", "file").Logger()),
		)
		if err != nil {
			return nil, fmt.Errorf("creating file registry: %w", err)
		}
		return repo, nil
	default:
		return nil, ErrNoBackend
	}
}
