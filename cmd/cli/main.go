package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/marcelsud/hookbin/config"
	"github.com/marcelsud/hookbin/hook"
	"github.com/marcelsud/hookbin/internal/logging"
	"github.com/marcelsud/hookbin/registry"
)

/* cli - operator commands over the same registry the api serves
 * Usage: cli <list|stats|recent [limit]|show <slug>|reset <slug>|delete <slug>>
 * Output is JSON on stdout; errors go to stderr with exit code 1.
 */

const usage = "usage: cli <list|stats|recent [limit]|show <slug>|reset <slug>|delete <slug>>"

var errUsage = errors.New(usage)

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx := context.Background()
	repo, err := registry.New(registry.Options{
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
		FilePath:        cfg.DataFile,
		LogLimit:        cfg.LogLimit,
		Logger:          logging.New(logging.Config{Level: cfg.LogLevel, Format: "console"}),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := repo.Init(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = run(ctx, os.Args[1:], hook.NewService(repo), os.Stdout)
	if cerr := repo.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, s hook.UseCase, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	var (
		result any
		err    error
	)
	switch args[0] {
	case "list":
		result, err = s.List(ctx)
	case "stats":
		result, err = s.Stats(ctx)
	case "recent":
		limit := hook.DefaultRecentLimit
		if len(args) > 1 {
			limit, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("limit must be an integer: %w", err)
			}
		}
		result, err = s.Recent(ctx, limit)
	case "show", "reset", "delete":
		if len(args) < 2 {
			return errUsage
		}
		slug := args[1]
		switch args[0] {
		case "show":
			result, err = s.Get(ctx, slug)
		case "reset":
			result, err = s.Reset(ctx, slug)
		case "delete":
			err = s.Delete(ctx, slug)
			result = map[string]string{"deleted": slug}
		}
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
