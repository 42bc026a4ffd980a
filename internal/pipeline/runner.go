// Package pipeline orchestrates file discovery, per-file identification and
// property editing, and batch summary reporting.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/mkvkit/internal/config"
	"github.com/backmassage/mkvkit/internal/display"
	"github.com/backmassage/mkvkit/internal/identify"
	"github.com/backmassage/mkvkit/internal/lang"
	"github.com/backmassage/mkvkit/internal/logging"
	"github.com/backmassage/mkvkit/internal/runner"
)

const minFileSize = 280 // below the smallest possible EBML header + segment

// matroskaContainer is mkvmerge's container type for files mkvpropedit can
// edit in place.
const matroskaContainer = "Matroska"

// Run is the top-level batch entry point. It discovers files, resolves the
// configured language against the tool's own table, processes each file
// sequentially, and returns aggregate stats.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats
	exe := &runner.Executor{}

	files, err := Discover(cfg.InputDir, cfg.Pattern)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		stats.Failed++
		return stats
	}
	stats.Total = len(files)

	if err := validateLanguage(ctx, cfg, log, exe); err != nil {
		log.Error("%v", err)
		stats.Failed++
		return stats
	}

	logBatchHeader(cfg, log, &stats)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processFile(ctx, cfg, log, exe, path, &stats)
	}

	logSummary(log, &stats)
	return stats
}

// validateLanguage resolves the configured default audio language (ISO 639
// code or English name) against mkvmerge's own table and canonicalizes it
// to the ISO 639-2 code. When the table cannot be loaded, a plausible code
// passes through with a warning; a name cannot be resolved without the
// table and fails the batch.
func validateLanguage(ctx context.Context, cfg *config.Config, log *logging.Logger, exe *runner.Executor) error {
	if cfg.DefaultAudioLang == "" {
		return nil
	}

	table, err := lang.Load(ctx, exe, cfg.MkvmergePath)
	if err != nil {
		if len(cfg.DefaultAudioLang) <= 3 {
			log.Warn("Cannot load language table from mkvmerge, skipping validation: %v", err)
			return nil
		}
		return fmt.Errorf("cannot resolve language name %q without mkvmerge: %w", cfg.DefaultAudioLang, err)
	}
	log.Debug("Language table loaded, %d entries", table.Len())

	code, err := resolveLanguage(table, cfg.DefaultAudioLang)
	if err != nil {
		return err
	}
	if code != cfg.DefaultAudioLang {
		log.Info("Language %q resolved to code %q", cfg.DefaultAudioLang, code)
	}
	cfg.DefaultAudioLang = code
	return nil
}

// resolveLanguage canonicalizes an ISO 639 code or English language name to
// the table's ISO 639-2 code.
func resolveLanguage(table *lang.Table, value string) (string, error) {
	if l, ok := table.ByCode(value); ok {
		return l.ISO6392, nil
	}
	if l, ok := table.ByName(value); ok {
		return l.ISO6392, nil
	}
	return "", fmt.Errorf("unknown language %q (not in mkvmerge --list-languages)", value)
}

// processFile handles one file: validate, identify, then edit in place or
// remux depending on the container type.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	exe *runner.Executor,
	path string,
	stats *RunStats,
) {
	basename := filepath.Base(path)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	// --- Validate ---
	fi, err := os.Stat(path)
	if err != nil {
		log.Error("File not found: %s", path)
		stats.Failed++
		return
	}
	if fi.Size() < minFileSize {
		log.Error("File too small (possibly corrupt): %s", path)
		stats.Failed++
		return
	}

	// --- Identify ---
	info, err := identify.Identify(ctx, exe, cfg.MkvmergePath, path)
	if err != nil {
		log.Error("Cannot identify file: %v", err)
		stats.Failed++
		return
	}

	if info.ContainerType != matroskaContainer {
		remuxFile(ctx, cfg, log, exe, path, info, stats)
		return
	}
	editFile(ctx, cfg, log, exe, path, info, stats)
}

// editFile plans and applies the in-place property edits for one Matroska
// file.
func editFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	exe *runner.Executor,
	path string,
	info *identify.FileInfo,
	stats *RunStats,
) {
	plan := Analyze(cfg, path, info)
	if plan.Empty() {
		log.Info("Skip (already matches wanted state)")
		stats.Skipped++
		return
	}

	cmd := plan.Command(cfg)
	if err := cmd.Validate(); err != nil {
		log.Error("Invalid edit command: %v", err)
		stats.Failed++
		return
	}

	if cfg.DryRun {
		display.RenderCommand(os.Stdout, cmd)
		log.Success("[DRY] Would apply %d edit(s)", len(plan.Edits))
		stats.Edited++
		return
	}

	if !executeAndRender(ctx, cfg, log, exe, cmd, "mkvpropedit") {
		stats.Failed++
		return
	}
	log.Success("Applied %d edit(s)", len(plan.Edits))
	stats.Edited++
}

// remuxFile converts one non-Matroska file to MKV, or skips it when remux
// mode is off.
func remuxFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	exe *runner.Executor,
	path string,
	info *identify.FileInfo,
	stats *RunStats,
) {
	if !cfg.Remux {
		log.Warn("Not a Matroska file (%s), skipping (use --remux to convert)", info.ContainerType)
		stats.Skipped++
		return
	}

	cmd := PlanRemux(cfg, path, info)
	if _, err := os.Stat(cmd.OutputPath); err == nil {
		log.Warn("Skip (remux target exists): %s", filepath.Base(cmd.OutputPath))
		stats.Skipped++
		return
	}
	if err := cmd.Validate(); err != nil {
		log.Error("Invalid remux command: %v", err)
		stats.Failed++
		return
	}

	if cfg.DryRun {
		display.RenderCommand(os.Stdout, cmd)
		log.Success("[DRY] Would remux to %s", filepath.Base(cmd.OutputPath))
		stats.Remuxed++
		return
	}

	if !executeAndRender(ctx, cfg, log, exe, cmd, "mkvmerge") {
		// Leave no partial output behind.
		os.Remove(cmd.OutputPath)
		stats.Failed++
		return
	}
	log.Success("Remuxed to %s", filepath.Base(cmd.OutputPath))
	stats.Remuxed++
}

// executeAndRender runs one tool invocation and renders its result per the
// configured display toggles. All per-run logging is tagged with the
// execution's run ID so the JSON log sink can correlate lines to runs.
// Returns false when the command failed (semantically or otherwise).
func executeAndRender(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	exe *runner.Executor,
	c runner.Command,
	tool string,
) bool {
	res, err := exe.Execute(ctx, c)
	if err != nil {
		log.Error("Cannot start %s: %v", tool, err)
		return false
	}
	runLog := log.WithRun(res.ID())
	opts := display.OptionsFrom(cfg)

	m, err := res.Wait()
	if err != nil {
		var failed *runner.FailedError
		if errors.As(err, &failed) {
			runLog.Error("%s failed: %v", tool, err)
			if rerr := display.Render(os.Stdout, failed.Result, opts); rerr != nil {
				runLog.Error("Cannot render result: %v", rerr)
			}
		} else {
			runLog.Error("%s did not complete: %v", tool, err)
		}
		return false
	}

	if err := display.Render(os.Stdout, m, opts); err != nil {
		runLog.Error("Cannot render result: %v", err)
	}
	return true
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d files (pattern %s)", stats.Total, cfg.Pattern)

	if cfg.TitleFromFilename {
		log.Info("Title: set from filename")
	} else {
		log.Info("Title: leave unchanged")
	}
	if cfg.DefaultAudioLang != "" {
		log.Info("Audio language: set %q where unset", cfg.DefaultAudioLang)
	}
	if cfg.Remux {
		log.Info("Remux: convert non-Matroska files to MKV")
	}
	if cfg.EditParseMode == config.ParseFull {
		log.Info("Parse mode: full (whole-file parsing)")
	}
	if !cfg.SkipUnedited {
		log.Info("Skip policy: re-apply edits even when already set")
	}
	if cfg.DryRun {
		log.Info("Dry run: no file will be modified")
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d edited, %d remuxed, %d skipped, %d failed",
		stats.Edited, stats.Remuxed, stats.Skipped, stats.Failed)
	log.Info("  Total files processed: %d", stats.Current)
}
