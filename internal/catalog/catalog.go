// Package catalog defines the MusicBrainz entity kinds the generator knows
// about: their cache file names, their database dump members, and the client
// lookup method each one selects in generated tests.
package catalog

import (
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Kind is one MusicBrainz entity kind.
type Kind struct {
	// Name doubles as the cache file name and the test-name prefix.
	Name string
	// DumpMember is the member inside a MusicBrainz database dump tar
	// holding this kind's rows.
	DumpMember string
}

// LookupMethod returns the client method a generated test invokes for this
// kind.
func (k Kind) LookupMethod() string {
	return "Lookup" + k.Name
}

// kinds lists every entity kind, in the order the extractor emits them.
var kinds = []Kind{
	{Name: "Area", DumpMember: "mbdump/area"},
	{Name: "Artist", DumpMember: "mbdump/artist"},
	{Name: "Event", DumpMember: "mbdump/event"},
	{Name: "Label", DumpMember: "mbdump/label"},
	{Name: "Place", DumpMember: "mbdump/place"},
	{Name: "Recording", DumpMember: "mbdump/recording"},
	{Name: "Release", DumpMember: "mbdump/release"},
	{Name: "ReleaseGroup", DumpMember: "mbdump/release_group"},
	{Name: "Series", DumpMember: "mbdump/series"},
	{Name: "Track", DumpMember: "mbdump/track"},
	{Name: "URL", DumpMember: "mbdump/url"},
	{Name: "Work", DumpMember: "mbdump/work"},
}

// defaultGenerate is the subset of kinds the generate command targets when
// the user does not narrow the set.
var defaultGenerate = []string{"Area", "Artist", "Event", "Release", "ReleaseGroup"}

// All returns every known kind in canonical order.
func All() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// DefaultNames returns the names of the default generation set.
func DefaultNames() []string {
	out := make([]string, len(defaultGenerate))
	copy(out, defaultGenerate)
	return out
}

// Lookup resolves a kind by its case-sensitive name.
func Lookup(name string) (Kind, bool) {
	for _, k := range kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Resolve maps a list of kind names to kinds, preserving order. Unknown
// names are errors.
func Resolve(names []string) ([]Kind, error) {
	out := make([]Kind, 0, len(names))
	for _, name := range names {
		k, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown entity kind %q", name)
		}
		out = append(out, k)
	}
	return out, nil
}

// manifestSchema validates the user-supplied entity manifest before any
// name resolution happens.
const manifestSchema = `{
	"type": "object",
	"required": ["entities"],
	"additionalProperties": false,
	"properties": {
		"entities": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "minLength": 1}
		}
	}
}`

type manifest struct {
	Entities []string `yaml:"entities" json:"entities"`
}

// LoadManifest reads a YAML entity manifest and returns the kinds it names,
// in manifest order.
func LoadManifest(path string) ([]Kind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	// Round-trip through the document form so the schema sees exactly
	// what was parsed.
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewGoLoader(m),
	)
	if err != nil {
		return nil, fmt.Errorf("manifest schema validation failed: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid manifest %s: %s", path, result.Errors()[0].String())
	}

	return Resolve(m.Entities)
}
