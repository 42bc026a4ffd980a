package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/mkvkit/internal/config"
	"github.com/backmassage/mkvkit/internal/identify"
	"github.com/backmassage/mkvkit/internal/mkvmerge"
	"github.com/backmassage/mkvkit/internal/propedit"
)

// FilePlan is the set of property edits planned for one file. An empty
// plan means the file already matches the wanted state.
type FilePlan struct {
	Path  string
	Edits []propedit.Edit
}

// Empty reports whether the plan carries no edits.
func (p *FilePlan) Empty() bool { return len(p.Edits) == 0 }

// Command assembles the mkvpropedit invocation for this plan.
func (p *FilePlan) Command(cfg *config.Config) *propedit.Command {
	return &propedit.Command{
		Binary:     cfg.MkvpropeditPath,
		TargetPath: p.Path,
		ParseMode:  propedit.ParseMode(cfg.EditParseMode),
		Edits:      p.Edits,
	}
}

// Analyze compares the identified state of one file against the configured
// edits and plans the property changes needed to close the gap.
//
// Title: when enabled, the container title is derived from the filename.
// With SkipUnedited the edit is dropped if the title already matches.
//
// Language: when a default audio language is configured, it is applied to
// audio tracks whose language is unset ("und" or empty). Tracks carrying a
// different explicit language are never touched; with SkipUnedited off,
// tracks already set to the default are re-applied.
func Analyze(cfg *config.Config, path string, fi *identify.FileInfo) *FilePlan {
	plan := &FilePlan{Path: path}

	if cfg.TitleFromFilename {
		want := TitleFor(path)
		if want != "" && (!cfg.SkipUnedited || fi.Title != want) {
			plan.Edits = append(plan.Edits, propedit.SetTitle(want))
		}
	}

	if cfg.DefaultAudioLang != "" {
		for i, t := range fi.AudioTracks() {
			if !wantsLanguage(t.Language, cfg.DefaultAudioLang, cfg.SkipUnedited) {
				continue
			}
			sel := propedit.AudioTrackSelector(i + 1)
			plan.Edits = append(plan.Edits, propedit.SetTrackLanguage(sel, cfg.DefaultAudioLang))
		}
	}

	return plan
}

// PlanRemux builds the mkvmerge command that converts a non-Matroska file
// into an MKV next to it, applying the configured edits at mux time: the
// container title from the filename, and the default language on audio
// tracks that carry none. mkvpropedit cannot edit foreign containers, so
// this is the remux counterpart of [Analyze].
func PlanRemux(cfg *config.Config, path string, fi *identify.FileInfo) *mkvmerge.Command {
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".mkv"

	cmd := &mkvmerge.Command{
		Binary:     cfg.MkvmergePath,
		OutputPath: out,
		Quiet:      true,
		Inputs:     []mkvmerge.Input{{Path: path}},
	}
	if cfg.TitleFromFilename {
		cmd.Title = TitleFor(path)
	}
	if cfg.DefaultAudioLang != "" {
		in := &cmd.Inputs[0]
		for _, t := range fi.AudioTracks() {
			if t.Language == "" || t.Language == "und" {
				in.Languages = append(in.Languages,
					mkvmerge.TrackValue{TrackID: t.ID, Value: cfg.DefaultAudioLang})
			}
		}
	}
	return cmd
}

// wantsLanguage decides whether an audio track with the given current
// language should receive the configured default.
func wantsLanguage(current, want string, skipUnedited bool) bool {
	switch current {
	case "", "und":
		return true
	case want:
		return !skipUnedited
	default:
		return false
	}
}

// TitleFor derives the container title from the file's base name: the
// extension is stripped and separator characters become single spaces.
// "Show.S01E02_Part.1.mkv" becomes "Show S01E02 Part 1".
func TitleFor(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	base = strings.Map(func(r rune) rune {
		switch r {
		case '.', '_':
			return ' '
		}
		return r
	}, base)

	return strings.Join(strings.Fields(base), " ")
}
