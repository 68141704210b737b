package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/alt-project/newsforge/driver"
	"github.com/alt-project/newsforge/orchestrator"
	"github.com/alt-project/newsforge/output"
	"github.com/alt-project/newsforge/repository"
	"github.com/alt-project/newsforge/service"
)

var cronSpec string

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Scrape the trending aggregator and write an analysis report",
	Long: `Trends runs the scrape pipeline once and exits.

The aggregator page is fetched and parsed into ranked items, the model
produces a traffic-potential analysis of the top entries, and both the
raw list (JSON) and the analysis (markdown) are written to the trends
directory. Any failure aborts the run with a non-zero exit.

With --cron the run repeats on the given schedule until interrupted;
a failed scheduled run is logged and the schedule continues.`,
	Args: cobra.NoArgs,
	RunE: runTrends,
}

func init() {
	rootCmd.AddCommand(trendsCmd)

	trendsCmd.Flags().StringVar(&cronSpec, "cron", "", "run repeatedly on a cron schedule instead of once")
}

func runTrends(cmd *cobra.Command, args []string) error {
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	printer := output.NewPrinter()

	model := driver.NewLLMClient(cfg, logger)
	hotlist := driver.NewHotListClient(cfg, logger)
	analyzer := service.NewTrendAnalyzer(cfg, model, logger)
	trends := repository.NewTrendRepository(cfg, logger)

	run := orchestrator.NewTrendRun(cfg, hotlist, analyzer, trends, printer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cronSpec == "" {
		return run.Run(ctx)
	}

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cronSpec, func() {
		if err := run.Run(ctx); err != nil {
			logger.Error("scheduled trend run failed", "error", err)
			printer.Error("Trend run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	printer.Info("Running trend pipeline on schedule %q", cronSpec)
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()

	printer.Success("Scheduler stopped")
	return nil
}
