package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/config"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/highlight"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/logging"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/paging"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/render"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/source"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/store"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/ui"
)

func main() {
	tagsFlag := flag.String("t", "", "Annotation tags file (TOML)")
	logFlag := flag.String("log", "info", "Log level (debug, info, warn, error)")
	pagedFlag := flag.Bool("p", false, "Force paged reading even for small local files")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bap [-t tags.toml] [-p] [-log level] <file | s3://bucket/key>\n")
		fmt.Fprintf(os.Stderr, "  -t\tAnnotation tags file overlaid on the view\n")
		fmt.Fprintf(os.Stderr, "  -p\tForce paged reading even for small local files\n")
		fmt.Fprintf(os.Stderr, "  -log\tLog level\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	// S3 credentials may live in a .env next to the working directory.
	_ = godotenv.Load()

	logging.SetLevel(*logFlag)
	logger := logging.Default()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	target := flag.Arg(0)

	src, paged, err := openSource(ctx, cfg, target, *pagedFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var ranges []highlight.Range
	if *tagsFlag != "" {
		ranges, err = config.LoadTags(*tagsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("loaded annotation tags",
			logging.FieldFile, *tagsFlag,
			"tags", len(ranges))
	}

	compositor := highlight.NewCompositor(ranges, cfg.Theme.Background)
	renderer := render.NewHexRenderer(cfg, compositor)

	model := ui.NewModel(ui.Options{
		Filename: target,
		Source:   src,
		Paged:    paged,
		Renderer: renderer,
		Config:   cfg,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openSource picks the ByteSource variant once, explicitly: remote objects
// and large local files read through the paging cache, small local files are
// loaded whole into memory.
func openSource(ctx context.Context, cfg *config.Config, target string, forcePaged bool) (source.ByteSource, *source.PagedSource, error) {
	logger := logging.Default()

	if strings.HasPrefix(target, "s3://") {
		bucket, key, err := splitS3URL(target)
		if err != nil {
			return nil, nil, err
		}

		s3store, err := store.NewS3Store(ctx, store.S3Options{
			Bucket:    bucket,
			Endpoint:  firstNonEmpty(os.Getenv("S3_ENDPOINT"), cfg.Remote.Endpoint),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Region:    firstNonEmpty(os.Getenv("AWS_REGION"), cfg.Remote.Region),
		}, logger)
		if err != nil {
			return nil, nil, err
		}

		size, err := s3store.SizeOf(ctx, key)
		if err != nil {
			return nil, nil, err
		}

		cache := paging.New(s3store, paging.Options{
			ChunkSize:       cfg.Cache.ChunkSize,
			MaxCachedChunks: cfg.Cache.MaxCachedChunks,
			Logger:          logger,
		})
		paged := source.NewPagedSource(cache, key, size)
		logger.Info("opened remote file",
			logging.FieldKey, key,
			logging.FieldSize, size)
		return paged, paged, nil
	}

	local := store.NewLocalStore()
	size, err := local.SizeOf(ctx, target)
	if err != nil {
		return nil, nil, err
	}

	if !forcePaged && size <= cfg.Viewer.InMemoryMaxBytes {
		data, err := local.ReadRange(ctx, target, 0, size)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("opened file in memory",
			logging.FieldFile, target,
			logging.FieldSize, size)
		return source.NewInMemorySource(data), nil, nil
	}

	cache := paging.New(local, paging.Options{
		ChunkSize:       cfg.Cache.ChunkSize,
		MaxCachedChunks: cfg.Cache.MaxCachedChunks,
		Logger:          logger,
	})
	paged := source.NewPagedSource(cache, target, size)
	logger.Info("opened paged file",
		logging.FieldFile, target,
		logging.FieldSize, size)
	return paged, paged, nil
}

func splitS3URL(target string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(target, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 URL %q, want s3://bucket/key", target)
	}
	return bucket, key, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
