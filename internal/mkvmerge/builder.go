package mkvmerge

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultBinary is used when Command.Binary is empty.
const DefaultBinary = "mkvmerge"

// Command assembles one mkvmerge invocation. Zero value plus OutputPath and
// at least one Input is a valid command; everything else is optional.
type Command struct {
	Binary     string // path to mkvmerge; empty means DefaultBinary on PATH
	OutputPath string
	Title      string // container title; empty leaves the source title
	GlobalTags string // path to a global tags XML file (--global-tags)
	Quiet      bool   // suppress progress output (--quiet)

	Inputs      []Input
	Attachments []Attachment
}

// Input is one source file with its track selection and per-track flags.
type Input struct {
	Path string

	Audio     Selection
	Video     Selection
	Subtitles Selection

	NoChapters    bool
	NoTrackTags   bool
	NoAttachments bool

	// Per-track output properties, applied by source track ID.
	Languages     []TrackValue // --language TID:value
	Names         []TrackValue // --track-name TID:value
	DefaultTracks []TrackFlag  // --default-track-flag TID:yes|no
}

// Selection controls which tracks of one class are copied from an input.
// The zero value copies everything.
type Selection struct {
	Exclude bool    // drop all tracks of this class (--no-audio form)
	IDs     []int64 // restrict to these source track IDs (empty: all)
	Invert  bool    // copy all except IDs (the "!" list form)
}

// TrackValue pairs a source track ID with a string property value.
type TrackValue struct {
	TrackID int64
	Value   string
}

// TrackFlag pairs a source track ID with a boolean property value.
type TrackFlag struct {
	TrackID int64
	Enabled bool
}

// Attachment is a file attached to the output container.
type Attachment struct {
	Path        string
	Name        string // stored name; empty keeps the file's basename
	MIME        string // autodetected by mkvmerge when empty
	Description string
}

// Validate checks the command invariants before it is handed to the runner.
func (c *Command) Validate() error {
	if c.OutputPath == "" {
		return errors.New("mkvmerge: output path must not be empty")
	}
	if len(c.Inputs) == 0 {
		return errors.New("mkvmerge: at least one input file is required")
	}
	for _, in := range c.Inputs {
		if in.Path == "" {
			return errors.New("mkvmerge: input path must not be empty")
		}
	}
	for _, a := range c.Attachments {
		if a.Path == "" {
			return errors.New("mkvmerge: attachment path must not be empty")
		}
	}
	return nil
}

// Argv returns the binary followed by the complete ordered argument list.
func (c *Command) Argv() []string {
	args := make([]string, 0, 32)

	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	args = append(args, bin)

	// --- Global options ---
	if c.Quiet {
		args = append(args, "--quiet")
	}
	args = append(args, "-o", c.OutputPath)
	if c.Title != "" {
		args = append(args, "--title", c.Title)
	}
	if c.GlobalTags != "" {
		args = append(args, "--global-tags", c.GlobalTags)
	}

	// --- Inputs: selection and track flags precede each file name ---
	for i := range c.Inputs {
		args = c.Inputs[i].appendArgs(args)
	}

	// --- Attachments ---
	for _, a := range c.Attachments {
		if a.Name != "" {
			args = append(args, "--attachment-name", a.Name)
		}
		if a.MIME != "" {
			args = append(args, "--attachment-mime-type", a.MIME)
		}
		if a.Description != "" {
			args = append(args, "--attachment-description", a.Description)
		}
		args = append(args, "--attach-file", a.Path)
	}

	return args
}

// String renders the human-readable command line.
func (c *Command) String() string { return strings.Join(c.Argv(), " ") }

func (in *Input) appendArgs(args []string) []string {
	args = appendSelection(args, "--audio-tracks", "--no-audio", in.Audio)
	args = appendSelection(args, "--video-tracks", "--no-video", in.Video)
	args = appendSelection(args, "--subtitle-tracks", "--no-subtitles", in.Subtitles)

	if in.NoChapters {
		args = append(args, "--no-chapters")
	}
	if in.NoTrackTags {
		args = append(args, "--no-track-tags")
	}
	if in.NoAttachments {
		args = append(args, "--no-attachments")
	}

	for _, tv := range in.Languages {
		args = append(args, "--language", trackValue(tv.TrackID, tv.Value))
	}
	for _, tv := range in.Names {
		args = append(args, "--track-name", trackValue(tv.TrackID, tv.Value))
	}
	for _, tf := range in.DefaultTracks {
		v := "no"
		if tf.Enabled {
			v = "yes"
		}
		args = append(args, "--default-track-flag", trackValue(tf.TrackID, v))
	}

	return append(args, in.Path)
}

// appendSelection emits the track selection flags for one track class:
// nothing when everything is copied, the disable flag when the class is
// excluded, or the (possibly inverted) ID list otherwise.
func appendSelection(args []string, listFlag, noFlag string, sel Selection) []string {
	switch {
	case sel.Exclude:
		return append(args, noFlag)
	case len(sel.IDs) == 0:
		return args
	default:
		return append(args, listFlag, idList(sel.IDs, sel.Invert))
	}
}

func idList(ids []int64, invert bool) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	list := strings.Join(parts, ",")
	if invert {
		list = "!" + list
	}
	return list
}

func trackValue(id int64, value string) string {
	return strconv.FormatInt(id, 10) + ":" + value
}
