package scenefile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/phanxgames/willow3d"
)

// LoadFile reads the document at path. Files ending in .toml are parsed as
// TOML, anything else as YAML.
func LoadFile(path string) (*willow3d.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "scenefile: read")
	}
	if isTOML(path) {
		return DecodeTOML(data)
	}
	return Decode(data)
}

// DecodeTOML parses a TOML document and builds its node tree. Children are
// written as [[children]] tables.
func DecodeTOML(data []byte) (*willow3d.Node, error) {
	var spec NodeSpec
	if err := toml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "scenefile: parse")
	}
	return Build(spec)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
