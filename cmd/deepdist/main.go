// Command deepdist prints the rough distance between two JSON documents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/deepdist"
	"github.com/hupe1980/deepdist/blobstore"
	"github.com/hupe1980/deepdist/blobstore/s3"
	"github.com/hupe1980/deepdist/codec"
	"github.com/hupe1980/deepdist/diff"
	"github.com/hupe1980/deepdist/prommetrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, inputs, err := LoadConfig(args, ".env", stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "deepdist:", err)
		return 2
	}

	logger := newLogger(cfg, stderr)
	if err := compare(ctx, cfg, inputs, logger, stdout); err != nil {
		logger.Error("compare failed", "error", err)
		_, _ = fmt.Fprintln(stderr, "deepdist:", err)
		return 1
	}
	return 0
}

func newLogger(cfg *Config, w io.Writer) *deepdist.Logger {
	level, _ := ParseLogLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return deepdist.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return deepdist.NewLogger(slog.NewTextHandler(w, opts))
}

func compare(ctx context.Context, cfg *Config, inputs []string, logger *deepdist.Logger, stdout io.Writer) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	c, _ := codec.ByName(cfg.Codec)
	docs := make([]any, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range inputs {
		g.Go(func() error {
			doc, err := load(gctx, cfg, c, name)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			logger.Debug("document loaded", "input", name)
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var (
		reg       *prometheus.Registry
		collector deepdist.MetricsCollector = deepdist.NoopMetricsCollector{}
	)
	if cfg.MetricsFile != "" {
		reg = prometheus.NewRegistry()
		pc, err := prommetrics.New("deepdist", reg)
		if err != nil {
			return err
		}
		collector = pc
	}

	differ := diff.New()
	s, err := deepdist.New(docs[0], docs[1],
		deepdist.WithCutoff(cfg.Cutoff),
		deepdist.WithIgnoreOrder(cfg.IgnoreOrder),
		deepdist.WithDiffer(differ),
		deepdist.WithLogger(logger),
		deepdist.WithMetricsCollector(collector),
	)
	if err != nil {
		return err
	}

	d, err := s.RoughDistance(ctx)
	if err != nil {
		return err
	}

	if cfg.Report {
		report, err := differ.Diff(docs[0], docs[1], diff.Options{IgnoreOrder: cfg.IgnoreOrder})
		if err != nil {
			return err
		}
		out, err := marshalIndent(c, map[string]any{
			"distance": d,
			"report":   report.Render(),
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(out))
		if err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(stdout, strconv.FormatFloat(d, 'f', -1, 64)); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func load(ctx context.Context, cfg *Config, c codec.Codec, name string) (any, error) {
	var (
		store blobstore.Store
		key   = name
	)
	if s3.IsURI(name) {
		bucket, k, err := s3.ParseURI(name)
		if err != nil {
			return nil, err
		}
		var opts []s3.Option
		if cfg.S3Region != "" {
			opts = append(opts, s3.WithRegion(cfg.S3Region))
		}
		if cfg.S3Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.S3Endpoint))
		}
		st, err := s3.New(ctx, bucket, opts...)
		if err != nil {
			return nil, err
		}
		store, key = st, k
	} else {
		store = blobstore.NewLocalStore("")
	}

	data, err := blobstore.ReadAll(ctx, store, key)
	if err != nil {
		return nil, err
	}
	return c.Document(data)
}

func marshalIndent(c codec.Codec, v any) ([]byte, error) {
	if ic, ok := c.(interface {
		MarshalIndent(v any) ([]byte, error)
	}); ok {
		return ic.MarshalIndent(v)
	}
	return c.Marshal(v)
}
