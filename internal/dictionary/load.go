package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/gcbaptista/go-style-checker/internal/errors"
)

// DefaultFileName is the dictionary file looked up by Discover.
const DefaultFileName = "corrections.json"

// Format identifies the encoding of a dictionary document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat maps a user supplied format or content type to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "", s == "json", strings.Contains(s, "json"):
		return FormatJSON, nil
	case s == "yaml", s == "yml", strings.Contains(s, "yaml"):
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dictionary format '%s'", s)
	}
}

// Load decodes a whole dictionary document. Any malformed part fails the
// entire load with a DictionaryLoadError; nothing is partially loaded.
func Load(r io.Reader, format Format) (*Dictionary, error) {
	d, err := decode(r, format)
	if err != nil {
		return nil, apperrors.NewDictionaryLoadError("", err)
	}
	return d, nil
}

// LoadFile reads and decodes the dictionary at path, choosing the format
// from its extension.
func LoadFile(path string) (*Dictionary, error) {
	file, err := os.Open(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return nil, apperrors.NewDictionaryLoadError(path, err)
	}
	defer file.Close()

	d, err := decode(file, FormatFromPath(path))
	if err != nil {
		return nil, apperrors.NewDictionaryLoadError(path, err)
	}
	return d, nil
}

func decode(r io.Reader, format Format) (*Dictionary, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	case FormatJSON, "":
		return decodeJSON(r)
	default:
		return nil, fmt.Errorf("unsupported dictionary format '%s'", format)
	}
}

// decodeJSON walks the object token by token so that key order survives.
func decodeJSON(r io.Reader) (*Dictionary, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dictionary document")
	}
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("dictionary must be a JSON object mapping wrong terms to correct terms")
	}

	d := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v where a key was expected", keyTok)
		}

		var value *string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value for '%s': %w", key, err)
		}
		if value == nil {
			return nil, fmt.Errorf("value for '%s' must be a string, got null", key)
		}
		if err := d.Set(key, *value); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after the dictionary object")
	}
	return d, nil
}

// decodeYAML reads a single mapping document; node order is insertion order.
func decodeYAML(r io.Reader) (*Dictionary, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty dictionary document")
		}
		return nil, err
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("dictionary must be a YAML mapping of wrong terms to correct terms")
	}

	d := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: keys must be plain strings", key.Line)
		}
		if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
			return nil, fmt.Errorf("line %d: value for '%s' must be a string", value.Line, key.Value)
		}
		if err := d.Set(key.Value, value.Value); err != nil {
			return nil, fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return d, nil
}

// Discover returns the first corrections.json found directly in one of dirs,
// then anywhere below them, in the order the directories are given.
func Discover(dirs ...string) (string, bool) {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, DefaultFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	for _, dir := range dirs {
		var found string
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped rather than aborting the search
				if entry != nil && entry.IsDir() && path != dir {
					return fs.SkipDir
				}
				return nil
			}
			if !entry.IsDir() && entry.Name() == DefaultFileName {
				found = path
				return fs.SkipAll
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.SkipAll) {
			continue
		}
		if found != "" {
			return found, true
		}
	}
	return "", false
}
