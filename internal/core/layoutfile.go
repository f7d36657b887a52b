package core

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// layoutFileTokens maps the special on-disk tokens of the layout text
// format to the literal character they represent; any token not in this
// map must be exactly one rune, taken literally.
var layoutFileTokens = map[string]rune{
	"~":  REPLACEMENT,
	"~~": '~',
	"__": '_',
}

var inverseLayoutFileTokens = map[rune]string{
	REPLACEMENT: "~",
	'~':         "~~",
	'_':         "__",
}

// The Geometry* constants name the canonical keyboard geometry
// constructors, as used in a layout file's first line.
const (
	GeometryANSI     = "rowstag"
	GeometryISO      = "iso"
	GeometryAngleMod = "anglemod"
	GeometryOrtho    = "ortho"
	GeometryColStag  = "colstag"
)

// LoadLayoutFile reads a 30-key layout text file: a first line naming the
// keyboard geometry, followed by three rows of ten space-separated key
// tokens. Characters are interned into mapping as they are encountered.
// Returns the geometry name and the parsed Layout.
func LoadLayoutFile(path string, mapping *CharacterMapping) (geometry string, layout *Layout, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	geometry, err = readNonEmptyLine(scanner)
	if err != nil {
		return "", nil, fmt.Errorf("core: %s: missing geometry name: %w", path, err)
	}
	geometry = strings.ToLower(strings.TrimSpace(geometry))

	keys := make([]int, 0, 30)
	seen := make(map[rune]bool)

	for row := 0; row < 3; row++ {
		line, err := readNonEmptyLine(scanner)
		if err != nil {
			return "", nil, fmt.Errorf("core: %s: row %d: %w", path, row+1, err)
		}
		tokens := strings.Fields(line)
		if len(tokens) != 10 {
			return "", nil, fmt.Errorf("core: %s: row %d has %d keys, want 10", path, row+1, len(tokens))
		}
		for col, tok := range tokens {
			r, ok := layoutFileTokens[strings.ToLower(tok)]
			if !ok {
				runes := []rune(tok)
				if len(runes) != 1 {
					return "", nil, fmt.Errorf("core: %s: row %d col %d: key %q must be one character or a special token", path, row+1, col+1, tok)
				}
				r = runes[0]
			}
			if r != REPLACEMENT {
				if seen[r] {
					return "", nil, fmt.Errorf("core: %s: duplicate character %q", path, string(r))
				}
				seen[r] = true
			}
			keys = append(keys, mapping.Push(r))
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, err
	}

	return geometry, NewLayout("", keys), nil
}

func readNonEmptyLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("unexpected end of file")
}

// SaveLayoutFile writes layout to path in the layout text format, under
// the named geometry, decoding character indices via mapping.
func SaveLayoutFile(path, geometry string, layout *Layout, mapping *CharacterMapping) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	MustFprintf(w, "%s\n", geometry)

	for row := 0; row < 3; row++ {
		for col := 0; col < 10; col++ {
			if col > 0 {
				MustFprintf(w, " ")
			}
			r := mapping.Decode(layout.CharAt(row*10 + col))
			if tok, ok := inverseLayoutFileTokens[r]; ok {
				MustFprintf(w, "%s", tok)
			} else {
				MustFprintf(w, "%c", r)
			}
		}
		MustFprintf(w, "\n")
	}

	return w.Flush()
}
