// Package corpus loads natural-language text into a trigram frequency
// corpus, serializable to and from JSON, and feeds it into a
// core.FrequencyTableBuilder.
package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/corvidae/trigopt/internal/core"
)

// Trigram is a sequence of three consecutive non-whitespace characters of
// source text; no trigram spans whitespace.
type Trigram [3]rune

// String returns the trigram as a plain 3-rune string.
func (t Trigram) String() string {
	return string(t[:])
}

// MarshalText implements encoding.TextMarshaler.
func (t Trigram) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Any key that is not
// exactly three Unicode scalar values is rejected: the on-disk format
// guarantees its trigram keys are well-formed, and silently accepting a
// differently-sized key would corrupt the frequency table it feeds.
func (t *Trigram) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 3 {
		return &BadTrigramLengthError{Key: string(text), Len: len(runes)}
	}
	t[0], t[1], t[2] = runes[0], runes[1], runes[2]
	return nil
}

// BadTrigramLengthError reports a corpus JSON trigram key that is not
// exactly three Unicode scalar values.
type BadTrigramLengthError struct {
	Key string
	Len int
}

func (e *BadTrigramLengthError) Error() string {
	return fmt.Sprintf("corpus: trigram key %q has length %d, want 3", e.Key, e.Len)
}

// ChunkingFailureError reports that a corpus source file could not be
// split into line-sized chunks for parallel ingestion.
type ChunkingFailureError struct {
	Path string
	Err  error
}

func (e *ChunkingFailureError) Error() string {
	return fmt.Sprintf("corpus: could not chunk %q: %v", e.Path, e.Err)
}

func (e *ChunkingFailureError) Unwrap() error { return e.Err }

// PathKindError reports that a given ingestion path is neither a regular
// file nor a directory (a symlink loop, device file, etc).
type PathKindError struct {
	Path string
}

func (e *PathKindError) Error() string {
	return fmt.Sprintf("corpus: %q is neither a regular file nor a directory", e.Path)
}

// NamelessSaveError reports an attempt to serialize a Corpus whose Name is
// empty; the name is required to round-trip identification through the
// on-disk format.
type NamelessSaveError struct{}

func (e *NamelessSaveError) Error() string {
	return "corpus: cannot save a corpus with an empty name"
}

// Corpus is a named trigram frequency count, the in-memory form of the
// on-disk JSON corpus format.
type Corpus struct {
	Name     string
	Trigrams map[Trigram]int
}

// NewCorpus returns an empty corpus named name.
func NewCorpus(name string) *Corpus {
	return &Corpus{Name: name, Trigrams: make(map[Trigram]int)}
}

// Total returns the sum of all trigram counts.
func (c *Corpus) Total() int {
	var total int
	for _, n := range c.Trigrams {
		total += n
	}
	return total
}

type trigramCount struct {
	Trigram Trigram
	Count   int
}

// StringSorted returns a human-readable listing of the corpus's trigrams,
// most frequent first, truncated to limit entries (no truncation if limit
// is <= 0).
func (c *Corpus) StringSorted(limit int) string {
	counts := make([]trigramCount, 0, len(c.Trigrams))
	for t, n := range c.Trigrams {
		counts = append(counts, trigramCount{t, n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Trigram.String() < counts[j].Trigram.String()
	})
	if limit > 0 && limit < len(counts) {
		counts = counts[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Corpus: %s\n", c.Name)
	for _, tc := range counts {
		fmt.Fprintf(&b, "%s: %d\n", tc.Trigram.String(), tc.Count)
	}
	return b.String()
}

func (c *Corpus) String() string {
	return c.StringSorted(30)
}

// addText tallies every trigram of consecutive, non-whitespace characters
// in text, lowercased first. A run of whitespace resets the sliding
// window, so no trigram bridges across it.
func (c *Corpus) addText(text string) {
	text = strings.ToLower(text)
	var prev1, prev2 rune
	have1, have2 := false, false

	for _, r := range text {
		if unicode.IsSpace(r) {
			have1, have2 = false, false
			continue
		}
		if have1 && have2 {
			c.Trigrams[Trigram{prev2, prev1, r}]++
		}
		prev2, have2 = prev1, have1
		prev1, have1 = r, true
	}
}

// loadFile tallies the trigrams of one text file, line by line, into a
// fresh single-file corpus.
func loadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := NewCorpus(filepath.Base(path))
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.addText(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ChunkingFailureError{Path: path, Err: err}
	}
	return c, nil
}

// LoadPath ingests a corpus from path, which must be a regular file or a
// directory of regular files. Files are read in parallel, one goroutine
// each via errgroup, and their per-file trigram tallies are reduced by
// pointwise addition - commutative and associative, so reduction order
// never affects the result. name becomes the resulting corpus's Name.
func LoadPath(ctx context.Context, name, path string) (*Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var files []string
	switch {
	case info.Mode().IsRegular():
		files = []string{path}
	case info.IsDir():
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	default:
		return nil, &PathKindError{Path: path}
	}

	results := make([]*Corpus, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			c, err := loadFile(f)
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewCorpus(name)
	for _, c := range results {
		for t, n := range c.Trigrams {
			merged.Trigrams[t] += n
		}
	}
	return merged, nil
}

// LoadJSON decodes a corpus from its JSON on-disk form.
func LoadJSON(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw struct {
		Name     string         `json:"name"`
		Trigrams map[string]int `json:"trigrams"`
	}
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, err
	}

	c := NewCorpus(raw.Name)
	for key, n := range raw.Trigrams {
		var t Trigram
		if err := t.UnmarshalText([]byte(key)); err != nil {
			return nil, err
		}
		c.Trigrams[t] = n
	}
	return c, nil
}

// SaveJSON writes the corpus to path in its JSON on-disk form. Returns
// NamelessSaveError if the corpus's Name is empty.
func (c *Corpus) SaveJSON(path string) error {
	if c.Name == "" {
		return &NamelessSaveError{}
	}

	raw := struct {
		Name     string         `json:"name"`
		Trigrams map[string]int `json:"trigrams"`
	}{Name: c.Name, Trigrams: make(map[string]int, len(c.Trigrams))}
	for t, n := range c.Trigrams {
		raw.Trigrams[t.String()] = n
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(&raw)
}

// Coverage reports what fraction of c's total trigram mass is made up of
// trigrams whose three characters are all present in placed. A layout has
// only as many keys as it has positions, so a corpus drawn from a larger
// alphabet will always leave some trigram mass uncovered; this quantifies
// how much.
func (c *Corpus) Coverage(placed map[rune]bool) (coveredPercent float64) {
	total := c.Total()
	if total == 0 {
		return 0
	}
	var covered int
	for t, n := range c.Trigrams {
		if placed[t[0]] && placed[t[1]] && placed[t[2]] {
			covered += n
		}
	}
	return 100 * float64(covered) / float64(total)
}

// ToFrequencyTableBuilder tallies every trigram of c into b, interning
// characters as it goes. Weight is the raw integer count of each trigram;
// the builder's own normalization handles scaling the grand total to 100.
func (c *Corpus) ToFrequencyTableBuilder(b *core.FrequencyTableBuilder) {
	for t, n := range c.Trigrams {
		b.Add(t[0], t[1], t[2], float64(n))
	}
}
