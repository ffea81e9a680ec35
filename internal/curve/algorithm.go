package curve

import (
	"fmt"
	"strings"
)

// Algorithm selects how a curve maps a parameter to a position.
type Algorithm int

const (
	// DeCasteljau evaluates by repeated linear interpolation. Default.
	DeCasteljau Algorithm = iota
	// Bernstein evaluates the weighted sum of binomial basis polynomials.
	Bernstein

	algorithmCount
)

func (a Algorithm) String() string {
	switch a {
	case DeCasteljau:
		return "decasteljau"
	case Bernstein:
		return "bernstein"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Next cycles through the algorithms.
func (a Algorithm) Next() Algorithm {
	return (a + 1) % algorithmCount
}

// ParseAlgorithm accepts the String form, case-insensitively, with
// "de-casteljau" and "de_casteljau" as aliases.
func ParseAlgorithm(s string) (Algorithm, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "decasteljau":
		return DeCasteljau, nil
	case "bernstein":
		return Bernstein, nil
	}
	return 0, fmt.Errorf("unknown curve algorithm %q", s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if a < 0 || a >= algorithmCount {
		return nil, fmt.Errorf("invalid curve algorithm %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
