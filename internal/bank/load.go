package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DocumentVersion is the version written into documents built by New.
const DocumentVersion = "v1.0.0"

//go:embed quizzes.json
var bundled []byte

// document is the on-disk shape of a bank.
type document struct {
	Version  string    `json:"version" yaml:"version"`
	Subjects []Subject `json:"subjects" yaml:"subjects"`
}

// Parse decodes and validates a JSON bank document.
func Parse(raw []byte) (*Bank, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return build(doc)
}

// ParseYAML decodes and validates a YAML bank document. YAML documents use
// the same field names as JSON ones.
func ParseYAML(raw []byte) (*Bank, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	return build(doc)
}

// New builds a bank directly from subjects, applying the same validation as
// a loaded document.
func New(subjects ...Subject) (*Bank, error) {
	return build(document{Version: DocumentVersion, Subjects: subjects})
}

func build(doc document) (*Bank, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	return newBank(doc.Version, doc.Subjects), nil
}

// LoadFile reads a bank document from path. The format is chosen by file
// extension: .yaml/.yml for YAML, anything else is treated as JSON.
func LoadFile(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}

	var b *Bank
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = ParseYAML(raw)
	default:
		b, err = Parse(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", path, err)
	}
	return b, nil
}

// Default returns the bank bundled into the binary. It is parsed once.
var Default = sync.OnceValues(func() (*Bank, error) {
	return Parse(bundled)
})

// Load returns the bank at path, or the bundled bank when path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}
