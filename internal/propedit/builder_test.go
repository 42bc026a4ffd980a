package propedit

import (
	"strings"
	"testing"
)

func TestCommand_Argv(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []string
	}{
		{
			name: "set container title",
			cmd: Command{
				TargetPath: "movie.mkv",
				Edits:      []Edit{SetTitle("The Movie")},
			},
			want: []string{
				"mkvpropedit", "movie.mkv",
				"--edit", "info", "--set", "title=The Movie",
			},
		},
		{
			name: "track language via audio selector",
			cmd: Command{
				TargetPath: "movie.mkv",
				Edits:      []Edit{SetTrackLanguage(AudioTrackSelector(1), "jpn")},
			},
			want: []string{
				"mkvpropedit", "movie.mkv",
				"--edit", "track:a1", "--set", "language=jpn",
			},
		},
		{
			name: "full parse mode with mixed actions",
			cmd: Command{
				Binary:     "/usr/local/bin/mkvpropedit",
				TargetPath: "movie.mkv",
				ParseMode:  ParseFull,
				Edits: []Edit{{
					Selector: "track:2",
					Actions: []Action{
						{Kind: ActionSet, Name: "name", Value: "Directors Commentary"},
						{Kind: ActionAdd, Name: "flag-commentary", Value: "1"},
						{Kind: ActionDelete, Name: "language"},
					},
				}},
			},
			want: []string{
				"/usr/local/bin/mkvpropedit", "movie.mkv",
				"--parse-mode", "full",
				"--edit", "track:2",
				"--set", "name=Directors Commentary",
				"--add", "flag-commentary=1",
				"--delete", "language",
			},
		},
		{
			name: "multiple edit sections keep order",
			cmd: Command{
				TargetPath: "movie.mkv",
				Edits: []Edit{
					SetTitle("The Movie"),
					SetTrackLanguage("track:s1", "eng"),
				},
			},
			want: []string{
				"mkvpropedit", "movie.mkv",
				"--edit", "info", "--set", "title=The Movie",
				"--edit", "track:s1", "--set", "language=eng",
			},
		},
		{
			name: "attachment operations",
			cmd: Command{
				TargetPath: "movie.mkv",
				Attachments: []AttachmentOp{
					{Kind: AttachAdd, Path: "cover.jpg", Name: "cover", MIME: "image/jpeg"},
					{Kind: AttachReplace, Target: "name:old.ttf", Path: "new.ttf"},
					{Kind: AttachDelete, Target: "2"},
				},
			},
			want: []string{
				"mkvpropedit", "movie.mkv",
				"--attachment-name", "cover",
				"--attachment-mime-type", "image/jpeg",
				"--add-attachment", "cover.jpg",
				"--replace-attachment", "name:old.ttf:new.ttf",
				"--delete-attachment", "2",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cmd.Argv()
			if strings.Join(got, "\x00") != strings.Join(tt.want, "\x00") {
				t.Errorf("Argv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		wantErr bool
	}{
		{"valid edit", Command{TargetPath: "m.mkv", Edits: []Edit{SetTitle("x")}}, false},
		{"missing target", Command{Edits: []Edit{SetTitle("x")}}, true},
		{"nothing to do", Command{TargetPath: "m.mkv"}, true},
		{
			"empty selector",
			Command{TargetPath: "m.mkv", Edits: []Edit{{Actions: []Action{{Kind: ActionSet, Name: "title"}}}}},
			true,
		},
		{
			"edit without actions",
			Command{TargetPath: "m.mkv", Edits: []Edit{{Selector: "info"}}},
			true,
		},
		{
			"action without name",
			Command{TargetPath: "m.mkv", Edits: []Edit{{Selector: "info", Actions: []Action{{Kind: ActionSet}}}}},
			true,
		},
		{
			"add attachment without path",
			Command{TargetPath: "m.mkv", Attachments: []AttachmentOp{{Kind: AttachAdd}}},
			true,
		},
		{
			"replace attachment without target",
			Command{TargetPath: "m.mkv", Attachments: []AttachmentOp{{Kind: AttachReplace, Path: "f.ttf"}}},
			true,
		},
		{
			"delete attachment without target",
			Command{TargetPath: "m.mkv", Attachments: []AttachmentOp{{Kind: AttachDelete}}},
			true,
		},
		{
			"unknown attachment op",
			Command{TargetPath: "m.mkv", Attachments: []AttachmentOp{{Kind: "rename"}}},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAudioTrackSelector(t *testing.T) {
	if got := AudioTrackSelector(1); got != "track:a1" {
		t.Errorf("AudioTrackSelector(1) = %q", got)
	}
}
