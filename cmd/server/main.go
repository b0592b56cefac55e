package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/perfkit/eventforest/internal/forest"
	"github.com/perfkit/eventforest/internal/infrastructure/config"
	"github.com/perfkit/eventforest/internal/infrastructure/logging"
	"github.com/perfkit/eventforest/internal/server"
	"github.com/perfkit/eventforest/internal/trace"
	"go.uber.org/zap"
)

func main() {
	batchDir := flag.String("batch", "", "Group every matching trace under this directory and exit")
	rulesPath := flag.String("rules", "", "Rule set path (overrides RULES_PATH)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *rulesPath != "" {
		cfg.Engine.RulesPath = *rulesPath
	}

	if *batchDir != "" {
		if err := runBatch(cfg, *batchDir); err != nil {
			log.Fatalf("Batch grouping failed: %v", err)
		}
		return
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}

// runBatch groups every trace file matching the configured pattern and
// writes a .grouped.json sibling next to each input.
func runBatch(cfg *config.Config, dir string) error {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	rules, err := forest.LoadRuleSet(cfg.Engine.RulesPath)
	if err != nil {
		return err
	}

	paths, err := trace.FindFiles(dir, cfg.Engine.TracePattern)
	if err != nil {
		return err
	}
	logger.Info("Batch grouping", zap.String("dir", dir), zap.Int("files", len(paths)))

	for _, path := range paths {
		tr, err := trace.Load(path)
		if err != nil {
			logger.Error("Skipping unreadable trace", zap.String("path", path), zap.Error(err))
			continue
		}
		f, err := forest.New(tr, forest.Options{
			Rules:     rules.Rules,
			RootKinds: rules.RootKinds,
			Semantics: rules.Semantics,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		f.Grow()

		out := strings.TrimSuffix(path, ".json") + ".grouped.json"
		data, err := trace.MarshalIndent(tr)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		logger.Info("Grouped trace written",
			zap.String("input", path),
			zap.String("output", out),
			zap.Int64("groups", f.Stats().GroupsCreated))
	}
	return nil
}
