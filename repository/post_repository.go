// ABOUTME: This file persists generated posts and archives consumed input files
// ABOUTME: Filenames combine a second-resolution timestamp and a sanitized title fragment
package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
)

const (
	postTimeLayout    = "20060102_150405"
	titleFragmentMax  = 20
	provenanceComment = `<!--
Original Title: %s
Source Link: %s
Input File: %s
Generated At: %s
-->

`
)

// PostRepository writes generated posts and archives consumed inputs.
type PostRepository struct {
	outputDir  string
	archiveDir string
	logger     *slog.Logger
	now        func() time.Time
}

// NewPostRepository creates a post repository from the loaded configuration.
func NewPostRepository(cfg *config.Config, logger *slog.Logger) *PostRepository {
	return &PostRepository{
		outputDir:  cfg.Pipeline.OutputDir,
		archiveDir: cfg.Pipeline.ArchiveDir,
		logger:     logger,
		now:        time.Now,
	}
}

// SavePost prefixes the provenance comment block and writes the post under
// a timestamp+title filename. Existing files are never overwritten on
// purpose; same-second collisions of identical title fragments are a known,
// accepted gap.
func (r *PostRepository) SavePost(post domain.GeneratedPost) (string, error) {
	generatedAt := post.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = r.now()
	}

	header := fmt.Sprintf(provenanceComment,
		post.Title,
		post.Link,
		post.SourceFile,
		generatedAt.Format(time.RFC3339),
	)

	filename := fmt.Sprintf("list_%s_%s.md",
		generatedAt.Format(postTimeLayout),
		SanitizeTitle(post.Title),
	)
	path := filepath.Join(r.outputDir, filename)

	if err := os.WriteFile(path, []byte(header+post.Body), 0o644); err != nil {
		return "", fmt.Errorf("writing post %s: %w", path, err)
	}

	r.logger.Info("post saved", "path", path, "title", post.Title)

	return path, nil
}

// ArchiveInput renames a consumed input file into the archive directory with
// an epoch-millisecond prefix, preserving the original name.
func (r *PostRepository) ArchiveInput(path string) (string, error) {
	archived := filepath.Join(r.archiveDir,
		fmt.Sprintf("%d_%s", r.now().UnixMilli(), filepath.Base(path)))

	if err := os.Rename(path, archived); err != nil {
		return "", fmt.Errorf("archiving input %s: %w", path, err)
	}

	r.logger.Info("input archived", "from", path, "to", archived)

	return archived, nil
}

// SanitizeTitle reduces a title to a filename-safe fragment: alphanumerics
// and CJK ideographs are kept, everything else becomes an underscore, and
// the result is cut to 20 runes.
func SanitizeTitle(title string) string {
	var b strings.Builder

	count := 0
	for _, r := range title {
		if count == titleFragmentMax {
			break
		}

		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
		count++
	}

	return b.String()
}
