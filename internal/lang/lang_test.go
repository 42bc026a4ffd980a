package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trimmed capture of `mkvmerge --list-languages` output (modern four-column
// format with the ISO 639-3 column).
const sampleListing = `  English name | ISO 639-3 code | ISO 639-2 code | ISO 639-1 code
 -----------------------------------------------------------------
  Abkhazian    | abk            | abk            | ab
  Afar         | aar            | aar            | aa
  English      | eng            | eng            | en
  Japanese     | jpn            | jpn            | ja
  Undetermined | und            | und            |
`

// Older three-column format without the 639-3 column.
const legacyListing = `  English name | ISO639-2 code | ISO639-1 code
 ----------------------------------------------
  English      | eng           | en
  Undetermined | und           |
`

func TestParse_ModernFormat(t *testing.T) {
	table, err := Parse(strings.Split(sampleListing, "\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())

	eng, ok := table.ByCode("eng")
	require.True(t, ok)
	assert.Equal(t, Language{Name: "English", ISO6392: "eng", ISO6391: "en"}, eng)

	// 639-1 code resolves to the same row.
	byShort, ok := table.ByCode("ja")
	require.True(t, ok)
	assert.Equal(t, "jpn", byShort.ISO6392)

	// Rows without a 639-1 code are only reachable by their 639-2 code.
	und, ok := table.ByCode("und")
	require.True(t, ok)
	assert.Equal(t, "", und.ISO6391)
}

func TestParse_LegacyFormat(t *testing.T) {
	table, err := Parse(strings.Split(legacyListing, "\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	eng, ok := table.ByCode("en")
	require.True(t, ok)
	assert.Equal(t, "eng", eng.ISO6392)
}

func TestTable_ByName(t *testing.T) {
	table, err := Parse(strings.Split(sampleListing, "\n"))
	require.NoError(t, err)

	jpn, ok := table.ByName("japanese")
	require.True(t, ok)
	assert.Equal(t, "jpn", jpn.ISO6392)

	_, ok = table.ByName("klingon")
	assert.False(t, ok)
}

func TestTable_LookupNormalization(t *testing.T) {
	table, err := Parse(strings.Split(sampleListing, "\n"))
	require.NoError(t, err)

	byCode, ok := table.ByCode("  ENG ")
	require.True(t, ok)
	assert.Equal(t, "English", byCode.Name)

	byName, ok := table.ByName(" English  ")
	require.True(t, ok)
	assert.Equal(t, "eng", byName.ISO6392)
}

func TestParse_NoRows(t *testing.T) {
	_, err := Parse([]string{"garbage", "no pipes here"})
	require.Error(t, err)
}
