package scenario

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/abhisek/talkbuddy/internal/schema"
)

// ErrNotFound is returned when a scenario ID is not in the catalog.
var ErrNotFound = errors.New("scenario not found")

// SupportedMajor is the catalog format major version this build understands.
const SupportedMajor = "v1"

//go:embed scenarios.json
var builtinJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

var catalogSchema = schema.MustCompile("scenario-catalog", catalogSchemaJSON)

// Catalog is a read-only, ordered set of scenarios.
type Catalog struct {
	version   string
	scenarios []Scenario
	byID      map[string]int
}

type catalogFile struct {
	Version   string     `json:"version"`
	Scenarios []Scenario `json:"scenarios"`
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	if err := catalogSchema.Validate(data); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if !semver.IsValid(f.Version) {
		return nil, fmt.Errorf("catalog version %q is not a semantic version", f.Version)
	}
	if major := semver.Major(f.Version); major != SupportedMajor {
		return nil, fmt.Errorf("catalog version %s unsupported (want %s.x.x)", f.Version, SupportedMajor)
	}
	if err := validateScenarios(f.Scenarios); err != nil {
		return nil, err
	}

	c := &Catalog{
		version:   f.Version,
		scenarios: f.Scenarios,
		byID:      make(map[string]int, len(f.Scenarios)),
	}
	for i, sc := range f.Scenarios {
		c.byID[sc.ID] = i
	}
	return c, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Load(builtinJSON)
})

// Builtin returns the catalog embedded in the binary.
func Builtin() (*Catalog, error) {
	return builtin()
}

// Version returns the catalog's format version.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of scenarios.
func (c *Catalog) Len() int { return len(c.scenarios) }

// All returns every scenario in catalog order.
func (c *Catalog) All() []Scenario {
	return slices.Clone(c.scenarios)
}

// Get returns the scenario with the given ID.
func (c *Catalog) Get(id string) (Scenario, error) {
	i, ok := c.byID[id]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.scenarios[i], nil
}

// Themes returns the distinct themes used by the catalog, in AllThemes order.
func (c *Catalog) Themes() []Theme {
	used := make(map[Theme]bool)
	for _, sc := range c.scenarios {
		used[sc.Theme] = true
	}
	var out []Theme
	for _, t := range AllThemes() {
		if used[t] {
			out = append(out, t)
		}
	}
	return out
}

// Filter narrows the catalog for the scenario selector.
type Filter struct {
	Search          string     // matched against title and description, case-insensitive
	Theme           Theme      // "" or "all" matches every theme
	Level           Difficulty // learner level; "" disables the level check
	PreferredThemes []Theme    // scenarios in these themes bypass the level check
}

// ThemeAll selects every theme in a Filter.
const ThemeAll Theme = "all"

// Filter returns the scenarios matching f, in catalog order.
func (c *Catalog) Filter(f Filter) []Scenario {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []Scenario
	for _, sc := range c.scenarios {
		if f.matches(sc, search) {
			out = append(out, sc)
		}
	}
	return out
}

func (f Filter) matches(sc Scenario, search string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(sc.Title), search) &&
		!strings.Contains(strings.ToLower(sc.Description), search) {
		return false
	}
	if f.Theme != "" && f.Theme != ThemeAll && sc.Theme != f.Theme {
		return false
	}
	levelOK := f.Level == "" || f.Level == Advanced || sc.Difficulty == f.Level
	return levelOK || slices.Contains(f.PreferredThemes, sc.Theme)
}
