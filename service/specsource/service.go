package specsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/genwave/genwave/model"
)

// Service loads and validates specifications from any location afs
// understands (file, mem, embed, s3, gs).
type Service struct {
	fs afs.Service
}

// New creates a specification source.
func New() *Service {
	return &Service{fs: afs.New()}
}

var envPattern = regexp.MustCompile(`\$\{env\.([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandLocation substitutes ${env.NAME} placeholders in a location with the
// corresponding environment variables.
func ExpandLocation(location string) string {
	return envPattern.ReplaceAllStringFunc(location, func(match string) string {
		name := envPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// Load reads, decodes and validates the specification at the location.
// YAML is assumed unless the location ends in .json.
func (s *Service) Load(ctx context.Context, location string) (*model.Specification, error) {
	location = ExpandLocation(location)
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read specification %s: %w", location, err)
	}
	return Parse(data, path.Ext(location))
}

// Parse decodes and validates raw specification content. The extension
// selects the codec; ".json" means JSON, anything else YAML.
func Parse(data []byte, ext string) (*model.Specification, error) {
	spec := &model.Specification{}
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("failed to decode specification: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("failed to decode specification: %w", err)
		}
	}
	if result := Validate(spec); !result.Valid() {
		return nil, result
	}
	return spec, nil
}
