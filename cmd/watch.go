package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alt-project/newsforge/driver"
	"github.com/alt-project/newsforge/hook"
	"github.com/alt-project/newsforge/orchestrator"
	"github.com/alt-project/newsforge/output"
	"github.com/alt-project/newsforge/repository"
	"github.com/alt-project/newsforge/service"
	"github.com/alt-project/newsforge/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the input directory and rewrite dropped article lists",
	Long: `Watch runs the long-lived list pipeline.

Every .md/.txt file dropped into the input directory is read once its
writes settle, its [Title](URL) links are fetched and rewritten by the
model under a bounded concurrency cap, the results are written to the
output directory, and the consumed file is renamed into the archive.
A configured verification hook runs after each batch with at least one
generated post.

The process runs until interrupted; per-article failures never stop it.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	printer := output.NewPrinter()

	model := driver.NewLLMClient(cfg, logger)
	fetcher := service.NewArticleFetcher(cfg, logger)
	generator := service.NewContentGenerator(cfg, model, logger)
	posts := repository.NewPostRepository(cfg, logger)

	var verifier orchestrator.HookRunner
	if cfg.HookEnabled() {
		verifier = hook.NewRunner(cfg.Hook.Command, logger)
	}

	batch := orchestrator.NewBatchOrchestrator(cfg, fetcher, generator, posts, verifier, logger)

	w := watcher.New(cfg, batch.ProcessFile, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printer.Info("Watching %s (output: %s, archive: %s)",
		cfg.Pipeline.InputDir, cfg.Pipeline.OutputDir, cfg.Pipeline.ArchiveDir)

	if err := w.Run(ctx); err != nil {
		return err
	}

	printer.Success("Watcher stopped")
	return nil
}
