// Package lang loads and queries the language table the mkvmerge binary
// ships: names with their ISO 639-2 and (when assigned) ISO 639-1 codes.
// The table is loaded once at startup from `mkvmerge --list-languages`
// output and is immutable afterwards.
package lang

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/backmassage/mkvkit/internal/runner"
)

// Language is one row of the table.
type Language struct {
	Name    string
	ISO6392 string // three-letter code, always present
	ISO6391 string // two-letter code, empty when not assigned
}

// Table is an immutable language lookup table.
type Table struct {
	list   []Language
	byCode map[string]Language // keyed by both 639-2 and 639-1 codes
	byName map[string]Language // keyed by lowercased English name
}

// Code validation for the pipe-separated columns of --list-languages.
var (
	reISO6392 = regexp.MustCompile(`^[a-z]{3}$`)
	reISO6391 = regexp.MustCompile(`^[a-z]{2}$`)
)

// Parse builds a Table from raw --list-languages output lines. Header and
// separator lines are skipped; each remaining line is split into its
// pipe-separated columns, with the name first and the ISO 639-2/639-1
// codes in the last columns (the 639-3 column newer mkvmerge versions emit
// in between is ignored).
func Parse(lines []string) (*Table, error) {
	t := &Table{
		byCode: make(map[string]Language),
		byName: make(map[string]Language),
	}

	for _, line := range lines {
		lang, ok := parseLine(line)
		if !ok {
			continue
		}
		t.list = append(t.list, lang)
		t.byCode[lang.ISO6392] = lang
		if lang.ISO6391 != "" {
			t.byCode[lang.ISO6391] = lang
		}
		t.byName[strings.ToLower(lang.Name)] = lang
	}

	if len(t.list) == 0 {
		return nil, fmt.Errorf("lang: no language rows found in mkvmerge output")
	}
	return t, nil
}

func parseLine(line string) (Language, bool) {
	if !strings.Contains(line, "|") {
		return Language{}, false
	}

	cols := strings.Split(line, "|")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	if len(cols) < 2 {
		return Language{}, false
	}

	name := cols[0]
	if name == "" || strings.EqualFold(name, "English name") {
		return Language{}, false
	}

	// Codes occupy the trailing columns: ... | 639-2 | 639-1. The 639-1
	// column may be empty.
	last := cols[len(cols)-1]
	var iso2, iso1 string
	if reISO6391.MatchString(last) {
		iso1 = last
		if len(cols) < 3 {
			return Language{}, false
		}
		iso2 = cols[len(cols)-2]
	} else if last == "" && len(cols) >= 3 {
		iso2 = cols[len(cols)-2]
	} else if reISO6392.MatchString(last) {
		iso2 = last
	}

	if !reISO6392.MatchString(iso2) {
		return Language{}, false
	}
	return Language{Name: name, ISO6392: iso2, ISO6391: iso1}, true
}

// ByCode looks a language up by its ISO 639-2 or 639-1 code.
func (t *Table) ByCode(code string) (Language, bool) {
	l, ok := t.byCode[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

// ByName looks a language up by its English name, case-insensitively.
func (t *Table) ByName(name string) (Language, bool) {
	l, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// Len returns the number of languages in the table.
func (t *Table) Len() int { return len(t.list) }

// listCmd is the runner command for the one-time table load.
type listCmd struct {
	binary string
}

func (c listCmd) Argv() []string { return []string{c.binary, "--list-languages"} }
func (c listCmd) String() string { return c.binary + " --list-languages" }

// Load runs `mkvmerge --list-languages` through the shared executor and
// parses the output into a Table. binary is the mkvmerge path ("mkvmerge"
// when empty). One-time startup load; the listing itself never emits
// warning or error lines, so Wait succeeding is the normal path.
func Load(ctx context.Context, exe *runner.Executor, binary string) (*Table, error) {
	if binary == "" {
		binary = "mkvmerge"
	}

	s, err := exe.Execute(ctx, listCmd{binary: binary})
	if err != nil {
		return nil, err
	}

	m, err := s.Wait()
	if err != nil {
		return nil, fmt.Errorf("lang: listing languages: %w", err)
	}

	var lines []string
	for cur := m.Output(); cur.Next(); {
		lines = append(lines, cur.Line().Message)
	}
	return Parse(lines)
}
