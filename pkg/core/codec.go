package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec defines how the whole collection is turned into the single stored string and back.
type Codec interface {
	// Name identifies the codec (e.g. "json").
	Name() string
	// Encode serializes notes in storage order.
	Encode(notes []Note) (string, error)
	// Decode parses a stored value. A blank value decodes to an empty collection.
	Decode(value string) ([]Note, error)
}

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
}

// --- JSON Codec ---

// JSONCodec stores the collection as an array of {"id","content","fixed"} records.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(notes []Note) (string, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (JSONCodec) Decode(value string) ([]Note, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var notes []Note
	if err := json.Unmarshal([]byte(value), &notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return notes, nil
}

// --- YAML Codec ---

// YAMLCodec stores the collection as a YAML sequence of records.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(notes []Note) (string, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := yaml.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (YAMLCodec) Decode(value string) ([]Note, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var notes []Note
	if err := yaml.Unmarshal([]byte(value), &notes); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return notes, nil
}
