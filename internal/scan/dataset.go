package scan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// datasetFile is the on-disk layout. JSON files load through the same path
// since JSON is a subset of YAML.
//
//	name: trench
//	scans:
//	  "(0,0)": "..#.~...."
//	  "(1,0)": [".", ".", "#", ".", "~", ".", ".", ".", "."]
//
// A flat mapping of keys to samples (no "scans" wrapper) is also accepted.
type datasetFile struct {
	Name  string                 `yaml:"name,omitempty"`
	Scans map[string]sampleValue `yaml:"scans"`
}

// sampleValue accepts either a nine-character string or a list of nine
// one-character strings.
type sampleValue struct {
	sample Sample
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *sampleValue) UnmarshalYAML(node *yaml.Node) error {
	var text string
	switch node.Kind {
	case yaml.ScalarNode:
		text = node.Value
	case yaml.SequenceNode:
		var sb strings.Builder
		for _, item := range node.Content {
			// Raw values: a bare "~" is a terrain symbol here, not null.
			if item.Kind != yaml.ScalarNode || len([]rune(item.Value)) != 1 {
				return fmt.Errorf("%w: line %d: sample entries must be single characters", ErrInvalidDataset, item.Line)
			}
			sb.WriteString(item.Value)
		}
		text = sb.String()
	default:
		return fmt.Errorf("%w: line %d: sample must be a string or a list", ErrInvalidDataset, node.Line)
	}

	s, err := ParseSample(text)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	v.sample = s
	return nil
}

// ParseDataset decodes a YAML or JSON dataset into a Table.
func ParseDataset(data []byte) (*Table, error) {
	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	scans := file.Scans
	if scans == nil {
		if err := yaml.Unmarshal(data, &scans); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
		}
	}

	t := NewTable(file.Name)
	for key, v := range scans {
		c, err := ParseKey(key)
		if err != nil {
			return nil, err
		}
		t.Set(c, v.sample)
	}
	return t, nil
}

// LoadDataset reads a dataset file from disk. The table is named after the
// file when the dataset carries no name.
func LoadDataset(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	t, err := ParseDataset(data)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = path
	}
	return t, nil
}

// WriteDataset encodes the table as YAML, one nine-character string per key.
func WriteDataset(w io.Writer, t *Table) error {
	out := struct {
		Name  string            `yaml:"name,omitempty"`
		Scans map[string]string `yaml:"scans"`
	}{
		Name:  t.Name,
		Scans: make(map[string]string, t.Len()),
	}
	for _, c := range t.Coords() {
		s, _ := t.Query(c)
		out.Scans[FormatKey(c)] = s.String()
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	return enc.Close()
}

// SaveDataset writes the table to path as YAML.
func SaveDataset(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", path, err)
	}
	if err := WriteDataset(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
