package harness

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/selbench/internal/engine"
	"github.com/roach88/selbench/internal/inputgen"
)

//go:embed config.cue
var configSchema string

// schemaDefinition names the definition in config.cue that a Config must
// satisfy.
const schemaDefinition = "#Config"

// Defaults applied to fields a config file leaves out.
const (
	DefaultCategory = CategoryAll
	DefaultRepeats  = 1
	DefaultRank     = 6
	DefaultSize     = 1000000
)

// Category selects which engines a sweep runs.
type Category string

const (
	CategorySelection Category = "selection"
	CategorySorting   Category = "sorting"
	CategoryAll       Category = "all"
)

// Algorithms returns the engine names of the category in report order.
// Selection engines come before sorting engines.
func (c Category) Algorithms() []string {
	switch c {
	case CategorySelection:
		return slices.Clone(engine.SelectionNames)
	case CategorySorting:
		return slices.Clone(engine.SortingNames)
	default:
		return engine.Names()
	}
}

// IncludesSelection reports whether the category runs selection engines.
func (c Category) IncludesSelection() bool {
	return c == CategorySelection || c == CategoryAll
}

// Config describes a benchmark sweep.
type Config struct {
	// Name labels the run in the store and in reports.
	Name string `yaml:"name" json:"name"`

	// Category picks the engines: selection, sorting or all.
	Category Category `yaml:"category" json:"category"`

	// Sizes lists the input sizes to benchmark.
	Sizes []int `yaml:"sizes" json:"sizes"`

	// Distributions lists the input shapes to benchmark.
	Distributions []inputgen.Distribution `yaml:"distributions" json:"distributions"`

	// Repeats is the number of executions per (distribution, size).
	// Repeat r regenerates its input from Seed+r.
	Repeats int `yaml:"repeats" json:"repeats"`

	// Rank is the zero-based order statistic requested from selection
	// engines. 6 asks for the 7th smallest element.
	Rank int `yaml:"rank" json:"rank"`

	// Seed fixes generated inputs and the pivot streams of the
	// randomized engines.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Verify checks every result against a reference sort.
	Verify bool `yaml:"verify" json:"verify"`

	// FailFast stops the sweep at the first failed measurement.
	FailFast bool `yaml:"fail_fast" json:"fail_fast"`
}

// DefaultConfig returns the configuration used when neither a config file
// nor flags say otherwise.
func DefaultConfig() Config {
	return Config{
		Name:          "default",
		Category:      DefaultCategory,
		Sizes:         []int{DefaultSize},
		Distributions: slices.Clone(inputgen.Distributions),
		Repeats:       DefaultRepeats,
		Rank:          DefaultRank,
	}
}

// rawConfig mirrors Config with pointers where a zero value is legal, so
// defaults only fill fields that are actually missing.
type rawConfig struct {
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Sizes         []int    `yaml:"sizes"`
	Distributions []string `yaml:"distributions"`
	Repeats       *int     `yaml:"repeats"`
	Rank          *int     `yaml:"rank"`
	Seed          uint64   `yaml:"seed"`
	Verify        bool     `yaml:"verify"`
	FailFast      bool     `yaml:"fail_fast"`
}

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid config: " + e.Message
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}

// IsConfigError returns true if err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// LoadConfig reads, defaults and validates a sweep config YAML file.
// Unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes, defaults and validates a sweep config document.
func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Name = NormalizeName(raw.Name)
	cfg.Seed = raw.Seed
	cfg.Verify = raw.Verify
	cfg.FailFast = raw.FailFast
	if raw.Category != "" {
		cfg.Category = Category(strings.ToLower(raw.Category))
	}
	if raw.Sizes != nil {
		cfg.Sizes = raw.Sizes
	}
	if raw.Distributions != nil {
		cfg.Distributions = normalizeDistributions(raw.Distributions)
	}
	if raw.Repeats != nil {
		cfg.Repeats = *raw.Repeats
	}
	if raw.Rank != nil {
		cfg.Rank = *raw.Rank
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NormalizeName trims a run name and puts it in Unicode NFC form, so
// names typed on different systems compare equal in the store.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// normalizeDistributions maps every recognized spelling to its canonical
// name. Unrecognized names are kept so validation can report them.
func normalizeDistributions(names []string) []inputgen.Distribution {
	out := make([]inputgen.Distribution, len(names))
	for i, n := range names {
		d, err := inputgen.ParseDistribution(n)
		if err != nil {
			d = inputgen.Distribution(n)
		}
		out[i] = d
	}
	return out
}

// Validate checks cfg against the embedded schema and then applies the
// cross-field rules the schema cannot express.
func (c Config) Validate() error {
	if err := validateSchema(c); err != nil {
		return err
	}

	if c.Category.IncludesSelection() {
		smallest := slices.Min(c.Sizes)
		if c.Rank >= smallest {
			return &ConfigError{
				Field:   "rank",
				Message: fmt.Sprintf("rank %d must be smaller than the smallest size %d", c.Rank, smallest),
			}
		}
	}
	return nil
}

func validateSchema(c Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema, cue.Filename("config.cue")).
		LookupPath(cue.ParsePath(schemaDefinition))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError turns the first CUE validation error into a ConfigError.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()

	// Paths are rooted at the schema definition; report config field names.
	path := first.Path()
	if len(path) > 0 && path[0] == schemaDefinition {
		path = path[1:]
	}
	return &ConfigError{
		Field:   strings.Join(path, "."),
		Message: fmt.Sprintf(format, args...),
	}
}
