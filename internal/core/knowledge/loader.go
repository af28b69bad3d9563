package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agenthands/zomra/internal/core/model"
)

// ErrSourceNotFound marks a missing knowledge source. It is an expected
// condition: the store falls back to the built-in entries.
var ErrSourceNotFound = errors.New("knowledge source not found")

// Source supplies the ordered list of knowledge entries.
type Source interface {
	Load(ctx context.Context) ([]model.KnowledgeEntry, error)
	Describe() string
}

type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Describe() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) ([]model.KnowledgeEntry, error) {
	if s.Path == "" {
		return nil, ErrSourceNotFound
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to read knowledge file '%s': %w", s.Path, err)
	}
	return ParseEntries(data, filepath.Ext(s.Path))
}

// ParseEntries decodes an ordered entry list. ext selects YAML for
// ".yaml"/".yml"; anything else is treated as JSON.
func ParseEntries(data []byte, ext string) ([]model.KnowledgeEntry, error) {
	var entries []model.KnowledgeEntry
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse knowledge YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse knowledge JSON: %w", err)
		}
	}
	return entries, nil
}

// NewSource picks an S3 or file source from a location string.
func NewSource(ctx context.Context, location string, s3cfg S3Config) (Source, error) {
	if bucket, key, ok := parseS3URL(location); ok {
		s3cfg.Bucket = bucket
		s3cfg.Key = key
		return NewS3Source(ctx, s3cfg)
	}
	return NewFileSource(location), nil
}

func parseS3URL(location string) (string, string, bool) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return "", "", false
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
