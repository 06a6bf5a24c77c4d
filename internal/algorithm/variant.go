// Package algorithm expands algorithm definitions into the encoded variant
// names under which evaluation results are stored.
package algorithm

import "strings"

// Param is one tunable parameter and the values it is swept over.
type Param struct {
	Name   string   `yaml:"name" toml:"name"`
	Values []string `yaml:"values" toml:"values"`
}

// MDef declares an algorithm and its parameter sweep.
type MDef struct {
	Algorithm string  `yaml:"algorithm" toml:"algorithm"`
	Params    []Param `yaml:"params" toml:"params"`
}

// Binding assigns a value to a parameter.
type Binding struct {
	Name  string
	Value string
}

// Variant is one point of an mdef's parameter sweep.
type Variant []Binding

// Variants returns the cartesian product of the parameter values. The first
// parameter varies slowest. Parameters without values are ignored.
func (m MDef) Variants() []Variant {
	variants := []Variant{{}}
	for _, p := range m.Params {
		if len(p.Values) == 0 {
			continue
		}
		next := make([]Variant, 0, len(variants)*len(p.Values))
		for _, v := range variants {
			for _, value := range p.Values {
				bound := make(Variant, len(v), len(v)+1)
				copy(bound, v)
				next = append(next, append(bound, Binding{Name: p.Name, Value: value}))
			}
		}
		variants = next
	}
	return variants
}

// Encode builds the directory-safe fingerprint of a variant, e.g.
// "tm_threshold-0.5_scale-2".
func Encode(code string, v Variant) string {
	var b strings.Builder
	b.WriteString(code)
	for _, binding := range v {
		b.WriteByte('_')
		b.WriteString(sanitize(binding.Name))
		b.WriteByte('-')
		b.WriteString(sanitize(binding.Value))
	}
	return b.String()
}

// EncodedVariants lists every variant of every mdef in declaration order.
func EncodedVariants(mdefs []MDef) []string {
	var encoded []string
	for _, m := range mdefs {
		for _, v := range m.Variants() {
			encoded = append(encoded, Encode(m.Algorithm, v))
		}
	}
	return encoded
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '\t', '_':
			return '.'
		}
		return r
	}, strings.TrimSpace(s))
}
