// ABOUTME: This file orchestrates one input file's batch: extract, fetch, generate, save, archive
// ABOUTME: Article tasks are isolated; the batch and the watcher survive every per-task failure
package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
	"github.com/alt-project/newsforge/hook"
	"github.com/alt-project/newsforge/service"
)

// PostWriter persists generated posts and archives consumed inputs.
// Satisfied by repository.PostRepository.
type PostWriter interface {
	SavePost(post domain.GeneratedPost) (string, error)
	ArchiveInput(path string) (string, error)
}

// Generator produces the rewritten post body for one article.
// Satisfied by service.ContentGenerator.
type Generator interface {
	Generate(ctx context.Context, title, excerpt, link string) (string, error)
}

// HookRunner runs the post-batch verification command.
// Satisfied by hook.Runner; nil disables the hook.
type HookRunner interface {
	Run(ctx context.Context, extraEnv ...string) hook.Result
}

// BatchOrchestrator drives the watched-list pipeline for one input file at a
// time. The watcher delivers files sequentially; within one batch, article
// tasks overlap up to the configured concurrency cap.
type BatchOrchestrator struct {
	cfg       *config.Config
	fetcher   service.ExcerptFetcher
	generator Generator
	posts     PostWriter
	verifier  HookRunner
	logger    *slog.Logger
}

// NewBatchOrchestrator wires the per-article pipeline together.
func NewBatchOrchestrator(
	cfg *config.Config,
	fetcher service.ExcerptFetcher,
	generator Generator,
	posts PostWriter,
	verifier HookRunner,
	logger *slog.Logger,
) *BatchOrchestrator {
	return &BatchOrchestrator{
		cfg:       cfg,
		fetcher:   fetcher,
		generator: generator,
		posts:     posts,
		verifier:  verifier,
		logger:    logger,
	}
}

// ProcessFile runs one batch to completion. It never returns an error: every
// failure is logged and contained so the watcher always returns to idle.
func (o *BatchOrchestrator) ProcessFile(ctx context.Context, path string) {
	batchID := uuid.NewString()
	logger := o.logger.With("batch_id", batchID, "input", path)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("reading input file failed", "error", err)
		return
	}

	items := service.ExtractLinks(string(data))
	if len(items) == 0 {
		// The only case where a detected file is not archived.
		logger.Warn("no article links found, leaving file in place")
		return
	}

	logger.Info("batch started", "articles", len(items))

	var succeeded atomic.Int64

	var g errgroup.Group
	g.SetLimit(o.cfg.Pipeline.MaxConcurrent)

	for _, item := range items {
		g.Go(func() error {
			// Task failures are logged here and never propagated; a
			// returned error would cancel sibling tasks.
			o.processArticle(ctx, logger, item, filepath.Base(path), &succeeded)
			return nil
		})
	}

	_ = g.Wait()

	// Archival is unconditional once a batch ran, success or not, so the
	// watcher cannot re-trigger on the same file.
	archived, err := o.posts.ArchiveInput(path)
	if err != nil {
		logger.Error("archiving input failed", "error", err)
	} else {
		logger.Info("input archived", "archived", archived)
	}

	generated := int(succeeded.Load())
	logger.Info("batch finished", "generated", generated, "skipped", len(items)-generated)

	if generated > 0 && o.verifier != nil {
		result := o.verifier.Run(ctx,
			"NEWSFORGE_BATCH_ID="+batchID,
			"NEWSFORGE_OUTPUT_DIR="+o.cfg.Pipeline.OutputDir,
		)

		// A failed verification is logged and deliberately ignored; it
		// never fails the batch.
		switch result.Status {
		case hook.Verified:
			logger.Info("verification hook passed")
		case hook.VerificationFailed:
			logger.Error("verification hook failed", "exit_code", result.ExitCode)
		}
	}
}

func (o *BatchOrchestrator) processArticle(
	ctx context.Context,
	logger *slog.Logger,
	item domain.ArticleItem,
	sourceFile string,
	succeeded *atomic.Int64,
) {
	excerpt := o.fetcher.FetchExcerpt(ctx, item.Link)
	if service.IsFetchFailure(excerpt) {
		logger.Warn("article skipped: fetch failed", "title", item.Title, "url", item.Link)
		return
	}

	body, err := o.generator.Generate(ctx, item.Title, excerpt, item.Link)
	if err != nil {
		logger.Error("article skipped: generation failed", "title", item.Title, "url", item.Link, "error", err)
		return
	}

	post := domain.GeneratedPost{
		Title:       item.Title,
		Link:        item.Link,
		SourceFile:  sourceFile,
		GeneratedAt: time.Now(),
		Body:        body,
	}

	if _, err := o.posts.SavePost(post); err != nil {
		logger.Error("article skipped: saving post failed", "title", item.Title, "error", err)
		return
	}

	succeeded.Add(1)
}
