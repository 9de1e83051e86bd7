// Package dataset reads zone catalogs from disk or over HTTP. Two formats are
// understood: the published JSON feed and hand-written HCL.
package dataset

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"parking-cost/core/catalog"
	"parking-cost/internal/errors"
	"parking-cost/internal/logging"
)

// Format names a dataset encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// DetectFormat picks a format from the file extension, defaulting to JSON
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL
	default:
		return FormatJSON
	}
}

// Parse decodes a dataset. An empty format is detected from name.
func Parse(data []byte, name string, format Format) (*catalog.Catalog, error) {
	if format == "" {
		format = DetectFormat(name)
	}

	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatHCL:
		return ParseHCL(data, name)
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown dataset format %q", format)
	}
}

// Load reads and decodes a dataset file
func Load(path string, format Format) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("dataset", path)
		}
		return nil, errors.Wrapf(errors.TypeInput, err, "reading dataset %s", path)
	}

	c, err := Parse(data, path, format)
	if err != nil {
		return nil, err
	}

	logging.Info("loaded catalog",
		zap.String("path", path),
		zap.String("version", c.Version),
		zap.Int("zones", len(c.Zones())))
	return c, nil
}
