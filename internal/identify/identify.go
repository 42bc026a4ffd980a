// Package identify runs mkvmerge's JSON identification against a file and
// converts the result into domain types the pipeline can plan edits from.
package identify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/backmassage/mkvkit/internal/runner"
)

// TrackType is the mkvmerge track classification.
type TrackType string

const (
	TrackVideo     TrackType = "video"
	TrackAudio     TrackType = "audio"
	TrackSubtitles TrackType = "subtitles"
)

// FileInfo holds the identification result for one container file.
type FileInfo struct {
	FileName      string
	ContainerType string
	Title         string
	Tracks        []Track
	Attachments   []Attachment
}

// Track is one stream in the container.
type Track struct {
	ID       int64 // mkvmerge track ID, used in selection and propedit targets
	Type     TrackType
	Codec    string
	Language string // ISO 639-2 code, "und" when unset
	Name     string
	Default  bool
}

// Attachment is one attached file in the container.
type Attachment struct {
	ID          int64
	FileName    string
	ContentType string
	Size        int64
}

// AudioTracks returns the audio tracks in container order.
func (fi *FileInfo) AudioTracks() []Track {
	var out []Track
	for _, t := range fi.Tracks {
		if t.Type == TrackAudio {
			out = append(out, t)
		}
	}
	return out
}

// identifyCmd is the runner command for one identification call.
type identifyCmd struct {
	binary string
	path   string
}

func (c identifyCmd) Argv() []string {
	return []string{c.binary, "--identification-format", "json", "--identify", c.path}
}

func (c identifyCmd) String() string { return strings.Join(c.Argv(), " ") }

// Identify runs a single mkvmerge JSON identification call against path
// through the shared executor and returns the parsed result. binary is the
// mkvmerge path ("mkvmerge" when empty).
func Identify(ctx context.Context, exe *runner.Executor, binary, path string) (*FileInfo, error) {
	if binary == "" {
		binary = "mkvmerge"
	}

	s, err := exe.Execute(ctx, identifyCmd{binary: binary, path: path})
	if err != nil {
		return nil, err
	}

	m, err := s.Wait()
	if err != nil {
		return nil, fmt.Errorf("identify %q: %w", path, err)
	}

	// The JSON document arrives as classified info lines; reassemble it.
	var sb strings.Builder
	for cur := m.Output(); cur.Next(); {
		sb.WriteString(cur.Line().Message)
		sb.WriteByte('\n')
	}
	return ParseJSON([]byte(sb.String()))
}

// ParseJSON converts raw mkvmerge identification JSON into a FileInfo.
// Exported for testing without a real mkvmerge binary.
func ParseJSON(data []byte) (*FileInfo, error) {
	var raw identifyOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse mkvmerge identification JSON: %w", err)
	}
	if !raw.Container.Recognized {
		return nil, fmt.Errorf("container format not recognized by mkvmerge")
	}
	return buildResult(&raw), nil
}

// --- mkvmerge identification wire types ---

type identifyOutput struct {
	FileName    string            `json:"file_name"`
	Container   identifyContainer `json:"container"`
	Tracks      []identifyTrack   `json:"tracks"`
	Attachments []identifyAttach  `json:"attachments"`
}

type identifyContainer struct {
	Type       string `json:"type"`
	Recognized bool   `json:"recognized"`
	Supported  bool   `json:"supported"`
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
}

type identifyTrack struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Codec      string `json:"codec"`
	Properties struct {
		Language     string `json:"language"`
		TrackName    string `json:"track_name"`
		DefaultTrack bool   `json:"default_track"`
	} `json:"properties"`
}

type identifyAttach struct {
	ID          int64  `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *identifyOutput) *FileInfo {
	fi := &FileInfo{
		FileName:      raw.FileName,
		ContainerType: raw.Container.Type,
		Title:         raw.Container.Properties.Title,
	}

	for _, t := range raw.Tracks {
		fi.Tracks = append(fi.Tracks, Track{
			ID:       t.ID,
			Type:     TrackType(t.Type),
			Codec:    t.Codec,
			Language: t.Properties.Language,
			Name:     t.Properties.TrackName,
			Default:  t.Properties.DefaultTrack,
		})
	}

	for _, a := range raw.Attachments {
		fi.Attachments = append(fi.Attachments, Attachment{
			ID:          a.ID,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Size:        a.Size,
		})
	}

	return fi
}
