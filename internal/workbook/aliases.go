package workbook

import (
	_ "embed"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/otterlog/countsheet/pkg/errors"
)

//go:embed aliases.yaml
var defaultAliasYAML []byte

// Aliases maps canonical column names to the header variants observed in
// historical workbooks. Lookups happen after header canonicalization, so
// only genuinely different spellings belong here.
type Aliases struct {
	byVariant map[string]string
}

// aliasFile is the on-disk/embedded YAML shape.
type aliasFile map[string][]string

// LoadAliases reads an alias table from path, or the embedded default
// table when path is empty.
func LoadAliases(path string) (Aliases, error) {
	data := defaultAliasYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Aliases{}, errors.WrapIO("read", path, err)
		}
		data = b
	}

	var file aliasFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Aliases{}, errors.WrapParse("yaml", path, err)
	}

	byVariant := make(map[string]string)
	for canonical, variants := range file {
		name := canonicalizeHeader(canonical)
		for _, v := range variants {
			byVariant[canonicalizeHeader(v)] = name
		}
	}
	return Aliases{byVariant: byVariant}, nil
}

// canonical maps an already-canonicalized header cell to its canonical
// column name. Unknown headers pass through unchanged so extra columns
// are carried without complaint.
func (a Aliases) canonical(name string) string {
	if target, ok := a.byVariant[name]; ok {
		return target
	}
	return name
}
