// Package main is the briefpipe CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/briefpipe/internal/analyze"
	"github.com/hyperjump/briefpipe/internal/config"
	"github.com/hyperjump/briefpipe/internal/extract"
	"github.com/hyperjump/briefpipe/internal/intake"
	"github.com/hyperjump/briefpipe/internal/models"
	"github.com/hyperjump/briefpipe/internal/ocr"
	"github.com/hyperjump/briefpipe/internal/pipeline"
	"github.com/hyperjump/briefpipe/internal/precedent"
	"github.com/hyperjump/briefpipe/internal/server"
	"github.com/hyperjump/briefpipe/internal/storage"
	"github.com/hyperjump/briefpipe/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/briefpipe/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "watch":
		runWatch()
	case "version":
		fmt.Println("briefpipe", version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: briefpipe <command> [flags]

Commands:
  server    Run the API server and intake watcher
  analyze   Run the pipeline on files and print the draft brief sections
  watch     Run only the intake watcher, without the API server
  version   Print version`)
}

// buildPipeline wires the extraction, analysis, and matching stages from cfg.
// The returned cleanup closes the precedent store and OCR controller.
func buildPipeline(cfg *config.Config, logger *zap.Logger, searcher precedent.Searcher) (*pipeline.Pipeline, func()) {
	controller := ocr.NewController(
		ocr.ONNXFactory(cfg.OCR.ModelPath),
		ocr.WithTimeout(time.Duration(cfg.OCR.TimeoutSeconds)*time.Second),
		ocr.WithMinTextLength(cfg.OCR.MinTextLength),
		ocr.WithLogger(logger),
	)
	extractor := extract.NewExtractor(controller, extract.WithLogger(logger))
	analyzer := analyze.NewAnalyzer(analyze.WithLogger(logger))

	var matcher *precedent.Matcher
	if searcher != nil {
		matcher = precedent.NewMatcher(searcher,
			precedent.WithLimit(cfg.Analysis.PrecedentLimit),
			precedent.WithLogger(logger))
	}
	p := pipeline.New(extractor, analyzer, matcher,
		pipeline.WithChunkSize(cfg.Analysis.ChunkSize),
		pipeline.WithLogger(logger))
	return p, func() { _ = controller.Close() }
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to config file")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	precedents, err := precedent.NewBleveStore(cfg.Storage.PrecedentIndexPath)
	if err != nil {
		logger.Fatal("failed to open precedent index", zap.Error(err))
	}
	defer precedents.Close()

	p, cleanup := buildPipeline(cfg, logger, precedents)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if len(cfg.Intake.Directories) > 0 {
		watcher := intake.NewWatcher(cfg.Intake.Directories, cfg.Intake.Extensions, p, store, logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Fatal("failed to start intake watcher", zap.Error(err))
		}
		defer watcher.Stop()
	}

	srv := server.NewServer(p, store, &cfg.Server, logger)
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Stop(shutdownCtx)
		cancel()
	}()
	if err := srv.Start(); err != nil {
		logger.Info("server stopped", zap.Error(err))
	}
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to config file")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if len(cfg.Intake.Directories) == 0 {
		fmt.Fprintln(os.Stderr, "no intake directories configured")
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer store.Close()

	p, cleanup := buildPipeline(cfg, logger, nil)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := intake.NewWatcher(cfg.Intake.Directories, cfg.Intake.Extensions, p, store, logger)
	if err := watcher.Start(ctx); err != nil {
		logger.Fatal("failed to start intake watcher", zap.Error(err))
	}
	defer watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "path to config file")
	docType := fs.String("type", string(models.TypeOther), "document type for all files")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: briefpipe analyze [flags] <files...>")
		os.Exit(1)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		// One-shot analysis works without a config file.
		cfg = &config.Config{}
		config.ApplyDefaults(cfg)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p, cleanup := buildPipeline(cfg, logger, nil)
	defer cleanup()

	var inputs []pipeline.DocumentInput
	for _, path := range fs.Args() {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to read", path, ":", err)
			os.Exit(1)
		}
		inputs = append(inputs, pipeline.DocumentInput{
			FileName:     filepath.Base(path),
			DocumentType: models.DocumentType(*docType),
			Content:      content,
		})
	}

	ctx := context.Background()
	docs := p.ProcessBatch(ctx, inputs)
	for _, doc := range docs {
		fmt.Printf("%s: %s (%d pages)\n", doc.FileName, doc.Status, doc.TotalPages)
		if doc.Error != "" {
			fmt.Printf("  error: %s\n", doc.Error)
		}
	}

	_, sections := p.BuildBrief(ctx, docs)
	for _, sec := range sections {
		fmt.Printf("\n=== %s ===\n%s\n", sec.Title, sec.Content)
	}
}
