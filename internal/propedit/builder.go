package propedit

import (
	"errors"
	"strconv"
	"strings"
)

// DefaultBinary is used when Command.Binary is empty.
const DefaultBinary = "mkvpropedit"

// ParseMode selects how much of the target file mkvpropedit reads before
// editing.
type ParseMode string

const (
	ParseFast ParseMode = "fast" // headers only (mkvpropedit default)
	ParseFull ParseMode = "full" // whole file; required for some broken files
)

// Command assembles one mkvpropedit invocation against a single target
// file. Edits and attachment operations are emitted in declaration order.
type Command struct {
	Binary     string // path to mkvpropedit; empty means DefaultBinary on PATH
	TargetPath string
	ParseMode  ParseMode // empty means the tool's default (fast)

	Edits       []Edit
	Attachments []AttachmentOp
}

// Edit is one --edit section: a selector plus its property actions.
type Edit struct {
	Selector string // e.g. "info", "track:2", "track:a1"
	Actions  []Action
}

// ActionKind is the property operation within an edit section.
type ActionKind string

const (
	ActionSet    ActionKind = "set"    // --set name=value
	ActionAdd    ActionKind = "add"    // --add name=value
	ActionDelete ActionKind = "delete" // --delete name
)

// Action is a single property operation. Value is ignored for deletes.
type Action struct {
	Kind  ActionKind
	Name  string
	Value string
}

// AttachmentOpKind distinguishes the three attachment operations.
type AttachmentOpKind string

const (
	AttachAdd     AttachmentOpKind = "add"
	AttachReplace AttachmentOpKind = "replace"
	AttachDelete  AttachmentOpKind = "delete"
)

// AttachmentOp is one attachment operation. Target selects an existing
// attachment for replace/delete ("2", "name:cover.jpg", "mime-type:..."),
// Path supplies the new content for add/replace.
type AttachmentOp struct {
	Kind   AttachmentOpKind
	Target string
	Path   string

	// Optional stored properties for add/replace.
	Name        string
	MIME        string
	Description string
}

// --- Selector and edit constructors ---

// InfoSelector addresses the segment information (container) section.
const InfoSelector = "info"

// AudioTrackSelector addresses the n-th audio track (1-based). Other
// selector forms ("track:2", "track:s1") are written literally into
// [Edit.Selector].
func AudioTrackSelector(n int) string { return "track:a" + strconv.Itoa(n) }

// SetTitle returns the edit that sets the container title.
func SetTitle(title string) Edit {
	return Edit{
		Selector: InfoSelector,
		Actions:  []Action{{Kind: ActionSet, Name: "title", Value: title}},
	}
}

// SetTrackLanguage returns the edit that sets the language of the track
// addressed by selector.
func SetTrackLanguage(selector, language string) Edit {
	return Edit{
		Selector: selector,
		Actions:  []Action{{Kind: ActionSet, Name: "language", Value: language}},
	}
}

// Validate checks the command invariants before it is handed to the runner.
func (c *Command) Validate() error {
	if c.TargetPath == "" {
		return errors.New("propedit: target path must not be empty")
	}
	if len(c.Edits) == 0 && len(c.Attachments) == 0 {
		return errors.New("propedit: nothing to do (no edits, no attachment ops)")
	}
	for _, e := range c.Edits {
		if e.Selector == "" {
			return errors.New("propedit: edit selector must not be empty")
		}
		if len(e.Actions) == 0 {
			return errors.New("propedit: edit section has no actions")
		}
		for _, a := range e.Actions {
			if a.Name == "" {
				return errors.New("propedit: action property name must not be empty")
			}
		}
	}
	for _, op := range c.Attachments {
		switch op.Kind {
		case AttachAdd:
			if op.Path == "" {
				return errors.New("propedit: add-attachment needs a file path")
			}
		case AttachReplace:
			if op.Target == "" || op.Path == "" {
				return errors.New("propedit: replace-attachment needs a target and a file path")
			}
		case AttachDelete:
			if op.Target == "" {
				return errors.New("propedit: delete-attachment needs a target")
			}
		default:
			return errors.New("propedit: unknown attachment operation")
		}
	}
	return nil
}

// Argv returns the binary followed by the complete ordered argument list.
func (c *Command) Argv() []string {
	args := make([]string, 0, 16)

	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	args = append(args, bin, c.TargetPath)

	if c.ParseMode != "" {
		args = append(args, "--parse-mode", string(c.ParseMode))
	}

	for _, e := range c.Edits {
		args = append(args, "--edit", e.Selector)
		for _, a := range e.Actions {
			switch a.Kind {
			case ActionSet:
				args = append(args, "--set", a.Name+"="+a.Value)
			case ActionAdd:
				args = append(args, "--add", a.Name+"="+a.Value)
			case ActionDelete:
				args = append(args, "--delete", a.Name)
			}
		}
	}

	for _, op := range c.Attachments {
		if op.Name != "" {
			args = append(args, "--attachment-name", op.Name)
		}
		if op.MIME != "" {
			args = append(args, "--attachment-mime-type", op.MIME)
		}
		if op.Description != "" {
			args = append(args, "--attachment-description", op.Description)
		}
		switch op.Kind {
		case AttachAdd:
			args = append(args, "--add-attachment", op.Path)
		case AttachReplace:
			args = append(args, "--replace-attachment", op.Target+":"+op.Path)
		case AttachDelete:
			args = append(args, "--delete-attachment", op.Target)
		}
	}

	return args
}

// String renders the human-readable command line.
func (c *Command) String() string { return strings.Join(c.Argv(), " ") }
