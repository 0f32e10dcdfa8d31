// SPDX-License-Identifier: MIT

package simulation

import (
	"fmt"
	"strings"
)

// Policy selects how each layer's mixing matrix is generated.
type Policy int

const (
	// Baseline uses the identity at every layer.
	Baseline Policy = iota
	// Unconstrained uses raw standard normal matrices (hyper-connections).
	Unconstrained
	// ManifoldConstrained projects the raw draw onto the doubly stochastic set.
	ManifoldConstrained
)

var policyNames = [...]string{
	Baseline:            "baseline",
	Unconstrained:       "unconstrained",
	ManifoldConstrained: "manifold_constrained",
}

// policyAliases maps the short historical names onto policies.
var policyAliases = map[string]Policy{
	"hc":  Unconstrained,
	"mhc": ManifoldConstrained,
}

// Policies returns all policies in comparison order.
func Policies() []Policy {
	return []Policy{Baseline, Unconstrained, ManifoldConstrained}
}

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool {
	return p >= Baseline && p <= ManifoldConstrained
}

// String returns the canonical name, or "Policy(n)" for undeclared values.
func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Policy(%d)", int(p))
	}

	return policyNames[p]
}

// ParsePolicy resolves a canonical name or alias ("hc", "mhc").
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePolicy(s string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range policyNames {
		if key == name {
			return Policy(i), nil
		}
	}
	if p, ok := policyAliases[key]; ok {
		return p, nil
	}

	return 0, fmt.Errorf("ParsePolicy: %q: %w", s, ErrUnknownPolicy)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("MarshalText: %d: %w", int(p), ErrUnknownPolicy)
	}

	return []byte(policyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v

	return nil
}
