package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kimchoi-jjiggae/coachMe/internal/completion"
	"github.com/kimchoi-jjiggae/coachMe/internal/db"
	"github.com/kimchoi-jjiggae/coachMe/internal/draft"
	"github.com/kimchoi-jjiggae/coachMe/internal/encryption"
	"github.com/kimchoi-jjiggae/coachMe/internal/journal"
	"github.com/kimchoi-jjiggae/coachMe/internal/metrics"
	"github.com/kimchoi-jjiggae/coachMe/internal/remote"
)

// app is everything a command needs, wired from cfg.
type app struct {
	svc     *journal.Service
	metrics *metrics.Metrics
	closers []io.Closer
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// openApp opens the local store and every optional collaborator the config
// enables. Optional collaborators that fail to come up are logged and
// skipped; the local store is the only hard requirement.
func openApp(ctx context.Context) (*app, error) {
	dir, err := cfg.DataPath()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	dbh, err := db.Open(dir)
	if err != nil {
		return nil, err
	}
	a := &app{metrics: metrics.New(), closers: []io.Closer{dbh}}

	var enc *encryption.Encryptor
	if cfg.Passphrase != "" {
		enc, err = encryption.NewEncryptor(cfg.Passphrase, dir)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("encryption: %w", err)
		}
	}
	store := db.NewStore(dbh, enc)

	opts := []journal.Option{
		journal.WithLogger(logger),
		journal.WithMetrics(a.metrics),
		journal.WithMaxDictation(cfg.Dictation.MaxDuration),
		journal.WithDrafts(store),
	}

	if url := strings.TrimSpace(cfg.Draft.RedisURL); url != "" {
		rs, err := draft.NewRedisStore(ctx, url, draftUser())
		if err != nil {
			logger.Warn("redis drafts unavailable, using local drafts", zap.Error(err))
		} else {
			a.closers = append(a.closers, rs)
			opts = append(opts, journal.WithDrafts(rs))
		}
	}

	if cfg.Remote.Enabled {
		if rdb, err := openRemote(ctx); err != nil {
			logger.Warn("remote store unavailable, working locally", zap.Error(err))
		} else {
			a.closers = append(a.closers, rdb)
			opts = append(opts, journal.WithRemote(remote.NewStore(rdb, cfg.Remote.UserID)))
		}
	}

	var gen journal.TitleGenerator
	if cfg.Completion.Enabled {
		client, err := completion.New(completion.Config{
			APIKey:        cfg.Completion.APIKey,
			BaseURL:       cfg.Completion.BaseURL,
			Model:         cfg.Completion.Model,
			Timeout:       cfg.Completion.Timeout,
			MaxContent:    cfg.Completion.MaxContent,
			RatePerMinute: cfg.Completion.RatePerMinute,
		}, logger)
		switch {
		case errors.Is(err, completion.ErrNoAPIKey):
			logger.Info("completion enabled without an api key, titles stay local")
		case err != nil:
			logger.Warn("completion client unavailable", zap.Error(err))
		default:
			gen = client
		}
	}

	titler := journal.NewTitler(gen, logger, a.metrics)
	a.svc = journal.NewService(store, titler, opts...)
	return a, nil
}

func openRemote(ctx context.Context) (*sql.DB, error) {
	rdb, err := remote.Open(ctx, cfg.Remote.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := remote.NewStore(rdb, cfg.Remote.UserID).EnsureSchema(ctx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func draftUser() string {
	if cfg.Remote.UserID != "" {
		return cfg.Remote.UserID
	}
	return "local"
}

// resolveID accepts a full id or a unique prefix of one, as printed by list.
func resolveID(ctx context.Context, svc *journal.Service, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if _, err := svc.Get(ctx, arg); err == nil {
		return arg, nil
	} else if !errors.Is(err, journal.ErrNotFound) {
		return "", err
	}
	if len(arg) < 4 {
		return "", fmt.Errorf("%w: %s", journal.ErrNotFound, arg)
	}
	entries, err := svc.List(ctx, journal.ListOptions{})
	if err != nil {
		return "", err
	}
	var match string
	for _, e := range entries {
		if strings.HasPrefix(e.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", journal.ErrNotFound, arg)
	}
	return match, nil
}

// readText joins args, or reads all of in when there are none.
func readText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}
