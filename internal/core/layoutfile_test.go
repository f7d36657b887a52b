package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadLayoutFile_RoundTrip(t *testing.T) {
	cm := NewCharacterMapping()
	chars := "qwertyuiopasdfghjkl;zxcvbnm,./"
	keys := make([]int, 0, 30)
	for _, r := range chars {
		keys = append(keys, cm.Push(r))
	}
	layout := NewLayout("qwerty", keys)

	path := filepath.Join(t.TempDir(), "qwerty.layout")
	require.NoError(t, SaveLayoutFile(path, GeometryANSI, layout, cm))

	cm2 := NewCharacterMapping()
	geometry, loaded, err := LoadLayoutFile(path, cm2)
	require.NoError(t, err)
	assert.Equal(t, GeometryANSI, geometry)

	for p := 0; p < loaded.N(); p++ {
		assert.Equal(t, cm.Decode(layout.CharAt(p)), cm2.Decode(loaded.CharAt(p)))
	}
}

func TestLoadLayoutFile_RejectsDuplicateCharacter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.layout")
	content := "rowstag\n" +
		"a a a a a a a a a a\n" +
		"~ ~ ~ ~ ~ ~ ~ ~ ~ ~\n" +
		"~ ~ ~ ~ ~ ~ ~ ~ ~ ~\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cm := NewCharacterMapping()
	_, _, err := LoadLayoutFile(path, cm)
	require.Error(t, err)
}

func TestLoadLayoutFile_RejectsWrongRowLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.layout")
	content := "rowstag\na b c\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cm := NewCharacterMapping()
	_, _, err := LoadLayoutFile(path, cm)
	require.Error(t, err)
}

func TestNewKeyboardByGeometry_UnknownName(t *testing.T) {
	_, err := NewKeyboardByGeometry("nonsense")
	require.Error(t, err)
	var ug *UnknownGeometryError
	require.ErrorAs(t, err, &ug)
}

func TestNewKeyboardByGeometry_AllCanonicalNames(t *testing.T) {
	for _, name := range []string{GeometryANSI, GeometryISO, GeometryAngleMod, GeometryOrtho, GeometryColStag} {
		kb, err := NewKeyboardByGeometry(name)
		require.NoError(t, err)
		assert.Equal(t, 30, kb.N())
	}
}
