package sweep

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ppopth/rs-listdecode/field"

	"gopkg.in/yaml.v3"
)

// How the code lengths of a scenario are picked
const (
	LengthsRandom = "random" // LengthsPerK lengths drawn from [k+1, q]
	LengthsK      = "k"      // n = k
	LengthsQ      = "q"      // n = q
)

// How the number of errors of a scenario is picked
const (
	ErrorsFixed    = "fixed"    // ErrorCount errors
	ErrorsFraction = "fraction" // ErrorFraction of the unique radius ⌊(n-k)/2⌋
	ErrorsRandom   = "random"   // LengthsPerK counts drawn from [0, ⌊(n-k)/2⌋]
	ErrorsBeyond   = "beyond"   // (n + ⌊(n-k)/2⌋)/2, past the unique radius
)

// FieldConfig selects a field and the message bounds swept over it. Exactly
// one of Prime and BinaryDegree is set.
type FieldConfig struct {
	Prime        int64  `yaml:"prime,omitempty"`
	BinaryDegree int    `yaml:"binary_degree,omitempty"`
	Irreducible  uint64 `yaml:"irreducible,omitempty"`
	Ks           []int  `yaml:"ks"`
}

// Field builds the configured field
func (fc FieldConfig) Field() (field.Field, error) {
	switch {
	case fc.Prime != 0 && fc.BinaryDegree != 0:
		return nil, fmt.Errorf("field sets both prime and binary_degree")
	case fc.Prime != 0:
		return field.NewCheckedPrimeField(big.NewInt(fc.Prime))
	case fc.BinaryDegree != 0:
		return field.NewCheckedBinaryField(fc.BinaryDegree, new(big.Int).SetUint64(fc.Irreducible))
	default:
		return nil, fmt.Errorf("field sets neither prime nor binary_degree")
	}
}

// Scenario is one experiment of the sweep
type Scenario struct {
	Name          string  `yaml:"name"`
	Lengths       string  `yaml:"lengths"`
	Errors        string  `yaml:"errors"`
	ErrorCount    int     `yaml:"error_count,omitempty"`
	ErrorFraction float64 `yaml:"error_fraction,omitempty"`
}

// Config is the sweep configuration
type Config struct {
	Seed            int64         `yaml:"seed"`
	Workers         int           `yaml:"workers"`
	PolynomialsPerK int           `yaml:"polynomials_per_k"`
	LengthsPerK     int           `yaml:"lengths_per_k"`
	MaxMultiplicity int           `yaml:"max_multiplicity"`
	Fields          []FieldConfig `yaml:"fields"`
	Scenarios       []Scenario    `yaml:"scenarios"`
}

// DefaultScenarios returns the experiments of the decoder comparison
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "no-errors", Lengths: LengthsRandom, Errors: ErrorsFixed, ErrorCount: 0},
		{Name: "two-errors", Lengths: LengthsRandom, Errors: ErrorsFixed, ErrorCount: 2},
		{Name: "radius-70", Lengths: LengthsRandom, Errors: ErrorsFraction, ErrorFraction: 0.7},
		{Name: "full-length", Lengths: LengthsQ, Errors: ErrorsRandom},
		{Name: "n-equals-k", Lengths: LengthsK, Errors: ErrorsFixed, ErrorCount: 0},
		{Name: "n-equals-k-one-error", Lengths: LengthsK, Errors: ErrorsFixed, ErrorCount: 1},
		{Name: "n-equals-k-two-errors", Lengths: LengthsK, Errors: ErrorsFixed, ErrorCount: 2},
		{Name: "beyond-radius", Lengths: LengthsQ, Errors: ErrorsBeyond},
	}
}

// DefaultConfig returns a configuration small enough to run in seconds
func DefaultConfig() *Config {
	return &Config{
		Seed:            1,
		Workers:         4,
		PolynomialsPerK: 5,
		LengthsPerK:     10,
		MaxMultiplicity: 2,
		Fields: []FieldConfig{
			{Prime: 7, Ks: []int{3}},
			{Prime: 97, Ks: []int{3, 15, 30, 45}},
		},
		Scenarios: DefaultScenarios(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML on top of DefaultConfig and validates the result
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.PolynomialsPerK < 1 {
		return fmt.Errorf("polynomials_per_k must be positive, got %d", c.PolynomialsPerK)
	}
	if c.LengthsPerK < 1 {
		return fmt.Errorf("lengths_per_k must be positive, got %d", c.LengthsPerK)
	}
	if c.MaxMultiplicity < 1 {
		return fmt.Errorf("max_multiplicity must be positive, got %d", c.MaxMultiplicity)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("no fields configured")
	}
	for i, fc := range c.Fields {
		f, err := fc.Field()
		if err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
		if len(fc.Ks) == 0 {
			return fmt.Errorf("field %s: no ks configured", f)
		}
		for _, k := range fc.Ks {
			if k < 1 || big.NewInt(int64(k)).Cmp(f.Order()) >= 0 {
				return fmt.Errorf("field %s: k = %d must satisfy 1 <= k < q", f, k)
			}
		}
	}
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("no scenarios configured")
	}
	names := make(map[string]struct{}, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario without a name")
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("scenario %q defined twice", s.Name)
		}
		names[s.Name] = struct{}{}

		switch s.Lengths {
		case LengthsRandom, LengthsK, LengthsQ:
		default:
			return fmt.Errorf("scenario %q: unknown lengths %q", s.Name, s.Lengths)
		}
		switch s.Errors {
		case ErrorsFixed:
			if s.ErrorCount < 0 {
				return fmt.Errorf("scenario %q: negative error_count", s.Name)
			}
		case ErrorsFraction:
			if s.ErrorFraction < 0 || s.ErrorFraction > 1 {
				return fmt.Errorf("scenario %q: error_fraction must be in [0, 1]", s.Name)
			}
		case ErrorsRandom, ErrorsBeyond:
		default:
			return fmt.Errorf("scenario %q: unknown errors %q", s.Name, s.Errors)
		}
	}
	return nil
}
