// Package config loads the optimizer's tunable coefficients from a TOML
// file, with an optional comma-separated override string layered on top -
// the same "file, then CLI string" shape the weights loader has always
// used, retargeted at a structured format.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/corvidae/trigopt/internal/core"
)

// The on-disk TOML shape of a weights configuration is a flat map of
// type-weight name to value at the document root, plus a "fingers"
// sub-table:
//
//	Sfb = -10.0
//	Inroll = 5.0
//
//	[fingers]
//	RP = -1.0
//	LP = -1.0
//
// go-toml/v2 has no flatten tag for a root-level map the way the original
// Rust loader's #[serde(flatten)] does, so the file is decoded into a plain
// map[string]any and every key other than "fingers" is treated as a type
// weight.

// fingerNames maps the canonical two-letter finger codes to their core.Finger
// value; the reverse of core.Finger.String.
var fingerNames = map[string]core.Finger{
	"LP": core.LP, "LR": core.LR, "LM": core.LM, "LI": core.LI, "LT": core.LT,
	"RT": core.RT, "RI": core.RI, "RM": core.RM, "RR": core.RR, "RP": core.RP,
}

// UnknownFingerError reports a finger code in a weights file or override
// string that does not name one of the ten canonical fingers.
type UnknownFingerError struct {
	Code string
}

func (e *UnknownFingerError) Error() string {
	return fmt.Sprintf("config: unknown finger code %q", e.Code)
}

// LoadWeights builds a core.Weights from an optional TOML file and an
// optional comma-separated override string of the form
// "type:Label=value,finger:Code=value". Either source may be empty; when
// both are given, the override string's entries win on conflict.
func LoadWeights(path, override string) (*core.Weights, error) {
	w := core.NewWeights()

	if path != "" {
		if err := addWeightsFromFile(w, path); err != nil {
			return nil, fmt.Errorf("config: could not load weights file %q: %w", path, err)
		}
	}

	if err := addWeightsFromString(w, override); err != nil {
		return nil, fmt.Errorf("config: could not parse weights override %q: %w", override, err)
	}

	return w, nil
}

func addWeightsFromFile(w *core.Weights, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, v := range raw {
		if key == "fingers" {
			fingers, ok := v.(map[string]any)
			if !ok {
				return fmt.Errorf("config: %q must be a table of finger weights", key)
			}
			for code, fv := range fingers {
				f, ok := fingerNames[strings.ToUpper(code)]
				if !ok {
					return &UnknownFingerError{Code: code}
				}
				val, err := toFloat(fv)
				if err != nil {
					return fmt.Errorf("config: finger %q: %w", code, err)
				}
				w.Finger[f] = val
			}
			continue
		}

		val, err := toFloat(v)
		if err != nil {
			return fmt.Errorf("config: type %q: %w", key, err)
		}
		w.Type[key] = val
	}

	return nil
}

// toFloat coerces a decoded TOML scalar to float64. go-toml/v2 decodes
// integer literals (e.g. "RP = -1") as int64 into a map[string]any, so both
// numeric kinds must be accepted.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", v)
	}
}

// addWeightsFromString parses entries of the form
// "type:Label=value,finger:Code=value" and merges them into w, overriding
// any entry already present. An empty string is a no-op.
func addWeightsFromString(w *core.Weights, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		kind, rest, ok := strings.Cut(entry, ":")
		if !ok {
			return fmt.Errorf("entry %q must be of the form type:Label=value or finger:Code=value", entry)
		}

		key, valStr, ok := strings.Cut(rest, "=")
		if !ok {
			return fmt.Errorf("entry %q is missing '='", entry)
		}
		key = strings.TrimSpace(key)
		val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
		if err != nil {
			return fmt.Errorf("entry %q has a non-numeric value: %w", entry, err)
		}

		switch strings.ToLower(strings.TrimSpace(kind)) {
		case "type":
			w.Type[key] = val
		case "finger":
			f, ok := fingerNames[strings.ToUpper(key)]
			if !ok {
				return &UnknownFingerError{Code: key}
			}
			w.Finger[f] = val
		default:
			return fmt.Errorf("entry %q has unknown kind %q, want \"type\" or \"finger\"", entry, kind)
		}
	}

	return nil
}
