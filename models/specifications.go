package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type Specification struct {
	Label string
	Value string
}

// Specifications is a label -> value mapping that keeps insertion order.
// It encodes as a JSON/YAML object.
type Specifications []Specification

func (s Specifications) Get(label string) (string, bool) {
	for _, spec := range s {
		if spec.Label == label {
			return spec.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing label in place or appends a new one.
func (s Specifications) Set(label, value string) Specifications {
	for i := range s {
		if s[i].Label == label {
			s[i].Value = value
			return s
		}
	}
	return append(s, Specification{Label: label, Value: value})
}

func (s Specifications) Clone() Specifications {
	if s == nil {
		return nil
	}
	return append(Specifications(nil), s...)
}

func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, spec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(spec.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(spec.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Specifications) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*s = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}
	out := Specifications{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("specifications: expected string key, got %v", tok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("specifications[%q]: %w", label, err)
		}
		out = out.Set(label, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

func (s *Specifications) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("specifications: expected mapping at line %d", value.Line)
	}
	out := make(Specifications, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		out = out.Set(value.Content[i].Value, value.Content[i+1].Value)
	}
	*s = out
	return nil
}
