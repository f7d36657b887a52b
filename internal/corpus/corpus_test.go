package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidae/trigopt/internal/core"
)

func TestAddText_CountsTrigramsIgnoringWhitespace(t *testing.T) {
	c := NewCorpus("test")
	c.addText("the will of the people.")
	assert.Equal(t, 2, c.Trigrams[Trigram{'t', 'h', 'e'}])
	assert.Equal(t, 1, c.Trigrams[Trigram{'p', 'e', 'o'}])
}

func TestAddText_NoTrigramBridgesWhitespace(t *testing.T) {
	c := NewCorpus("test")
	c.addText("ab cd")
	assert.Empty(t, c.Trigrams)
}

func TestAddText_Lowercases(t *testing.T) {
	c := NewCorpus("test")
	c.addText("THE")
	assert.Equal(t, 1, c.Trigrams[Trigram{'t', 'h', 'e'}])
}

func TestTrigram_UnmarshalText_RejectsWrongLength(t *testing.T) {
	var tri Trigram
	err := tri.UnmarshalText([]byte("ab"))
	require.Error(t, err)
	var badLen *BadTrigramLengthError
	require.ErrorAs(t, err, &badLen)
	assert.Equal(t, 2, badLen.Len)
}

func TestTrigram_MarshalUnmarshalRoundTrip(t *testing.T) {
	tri := Trigram{'x', 'y', 'z'}
	text, err := tri.MarshalText()
	require.NoError(t, err)

	var got Trigram
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, tri, got)
}

func TestSaveJSON_RejectsEmptyName(t *testing.T) {
	c := NewCorpus("")
	err := c.SaveJSON(filepath.Join(t.TempDir(), "out.json"))
	require.Error(t, err)
	var nameless *NamelessSaveError
	require.ErrorAs(t, err, &nameless)
}

func TestSaveJSON_LoadJSON_RoundTrip(t *testing.T) {
	c := NewCorpus("demo")
	c.addText("the people")
	path := filepath.Join(t.TempDir(), "demo.json")
	require.NoError(t, c.SaveJSON(path))

	loaded, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Name)
	assert.Equal(t, c.Trigrams, loaded.Trigrams)
}

func TestLoadJSON_RejectsBadTrigramKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","trigrams":{"ab":1}}`), 0o644))

	_, err := LoadJSON(path)
	require.Error(t, err)
	var badLen *BadTrigramLengthError
	require.ErrorAs(t, err, &badLen)
}

func TestLoadPath_RejectsWrongPathKind(t *testing.T) {
	_, err := LoadPath(context.Background(), "x", "/dev/null")
	// /dev/null is a device file on most systems; if this environment
	// reports it as regular, skip rather than assert a false failure.
	info, statErr := os.Stat("/dev/null")
	if statErr == nil && info.Mode().IsRegular() {
		t.Skip("/dev/null reports as a regular file in this environment")
	}
	require.Error(t, err)
}

func TestLoadPath_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("the quick brown fox\n"), 0o644))

	c, err := LoadPath(context.Background(), "corpus", path)
	require.NoError(t, err)
	assert.Equal(t, "corpus", c.Name)
	assert.NotEmpty(t, c.Trigrams)
}

func TestLoadPath_DirectoryMergesAdditively(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("the the the\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("the the\n"), 0o644))

	c, err := LoadPath(context.Background(), "corpus", dir)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Trigrams[Trigram{'t', 'h', 'e'}])
}

func TestCorpus_ToFrequencyTableBuilder(t *testing.T) {
	c := NewCorpus("demo")
	c.addText("the people")

	mapping := core.NewCharacterMapping()
	builder := core.NewFrequencyTableBuilder(mapping)
	c.ToFrequencyTableBuilder(builder)
	ft := builder.Build()

	var total float64
	for _, e := range ft.NonZero() {
		total += float64(e.Freq)
	}
	assert.InDelta(t, 100.0, total, 1e-3)
}
