package input

import (
	"os"
	"time"

	"infra-estimator/core/determinism"
	"infra-estimator/core/types"
	"infra-estimator/internal/errors"
)

// Envelope is a decoded input together with where it came from.
// Everything downstream consumes Config only.
type Envelope struct {
	Source   SourceInfo
	Document *Document
	Config   types.Configuration
	Metadata EnvelopeMetadata
}

// SourceInfo describes where the input came from
type SourceInfo struct {
	Type   SourceType
	Path   string // For files: local path
	Format Format
}

// SourceType indicates the source of input
type SourceType int

const (
	SourceFlags SourceType = iota // CLI flags only
	SourceFile                    // Scenario file
	SourceAPI                     // HTTP request body
)

// String returns the source type name
func (t SourceType) String() string {
	switch t {
	case SourceFlags:
		return "flags"
	case SourceFile:
		return "file"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// EnvelopeMetadata contains metadata about the envelope
type EnvelopeMetadata struct {
	LoadedAt time.Time

	// ContentHash is the hash of the raw input bytes, if any
	ContentHash string
}

// LoadFile reads a scenario file, choosing the decoder by extension
func LoadFile(path string, fallback types.Preset) (*Envelope, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("scenario file", path)
		}
		return nil, errors.Wrap(errors.TypeInput, "read scenario file", err)
	}

	return load(data, SourceInfo{Type: SourceFile, Path: path, Format: format}, fallback)
}

// FromBytes decodes an in-memory input such as a request body
func FromBytes(data []byte, format Format, fallback types.Preset) (*Envelope, error) {
	return load(data, SourceInfo{Type: SourceAPI, Format: format}, fallback)
}

// FromConfiguration wraps a configuration assembled elsewhere, e.g. from flags
func FromConfiguration(cfg types.Configuration) *Envelope {
	return &Envelope{
		Source:   SourceInfo{Type: SourceFlags},
		Document: DocumentFrom(cfg),
		Config:   cfg,
		Metadata: EnvelopeMetadata{LoadedAt: time.Now().UTC()},
	}
}

func load(data []byte, source SourceInfo, fallback types.Preset) (*Envelope, error) {
	label := source.Path
	if label == "" {
		label = source.Type.String()
	}

	doc, err := Decode(data, source.Format, label)
	if err != nil {
		return nil, err
	}

	cfg, err := doc.Configuration(fallback)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Source:   source,
		Document: doc,
		Config:   cfg,
		Metadata: EnvelopeMetadata{
			LoadedAt:    time.Now().UTC(),
			ContentHash: determinism.ComputeHash(data).Hex(),
		},
	}, nil
}

// DefaultCurrency switches the display currency to c unless the input
// named one itself
func (e *Envelope) DefaultCurrency(c types.Currency) {
	if c == "" || (e.Document != nil && e.Document.Currency != nil) {
		return
	}
	e.Config.Currency = c
}
