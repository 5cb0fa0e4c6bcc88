/*
policy.go - Ordering policies and their lookup table

PURPOSE:
  A Policy decides which periods get an order and how large each order is.
  Policies are a closed set: each one is a pure function from a scenario and
  a horizon to an order vector of horizon+1 quantities. The assembler turns
  that vector into a full schedule.

AVAILABLE POLICIES:
  Mock:           Random orders, for demos and as a baseline
  TargetLevel:    Keep projected inventory at InvTgt + SStok, trim excess
  LeadTimeWindow: Cover a rolling window of LdTm periods, then skip ahead
  Realistic:      Double lead-time look-ahead plus an emergency pass

NAMES:
  ParsePolicy accepts the canonical names above (any letter case) and the
  legacy tags used by older clients: Algo1, Algo2 and AlgoRealistic.
  Anything else is an UnknownPolicyError. There is no silent fallback.

EXAMPLE:
  policy, err := reorder.ParsePolicy("Algo1")   // PolicyTargetLevel
  orders, err := reorder.Orders(policy, scenario, 12, nil)

SEE ALSO:
  - policy_*.go: One file per policy
  - assemble.go: Turns orders into a schedule
*/
package reorder

import (
	"encoding"
	"fmt"
	"strings"
)

// Policy identifies an ordering policy.
type Policy int

const (
	PolicyMock Policy = iota
	PolicyTargetLevel
	PolicyLeadTimeWindow
	PolicyRealistic
)

// orderFunc computes an order vector of horizon+1 quantities. The scenario
// has already been validated against the horizon.
type orderFunc func(s Scenario, horizon int, rng Rand) []int

var policyTable = [...]struct {
	name    string
	legacy  string
	orders  orderFunc
	summary string
}{
	PolicyMock:           {"Mock", "", mockOrders, "random orders (30% of periods, multiples of 10 up to 400)"},
	PolicyTargetLevel:    {"TargetLevel", "Algo1", targetLevelOrders, "keep projected inventory at InvTgt + SStok, trimming excess"},
	PolicyLeadTimeWindow: {"LeadTimeWindow", "Algo2", leadTimeWindowOrders, "cover a rolling LdTm window of net demand"},
	PolicyRealistic:      {"Realistic", "AlgoRealistic", realisticOrders, "double lead-time look-ahead with emergency orders"},
}

var (
	_ encoding.TextMarshaler   = Policy(0)
	_ encoding.TextUnmarshaler = (*Policy)(nil)
)

// String returns the canonical policy name.
func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyTable[p].name
}

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool {
	return p >= 0 && int(p) < len(policyTable)
}

// Deterministic reports whether the policy always yields the same orders
// for the same scenario. Only Mock is not.
func (p Policy) Deterministic() bool {
	return p != PolicyMock
}

// Description is a one-line human summary of the policy.
func (p Policy) Description() string {
	if !p.Valid() {
		return ""
	}
	return policyTable[p].summary
}

// Legacy returns the tag older clients use for the policy, if any.
func (p Policy) Legacy() string {
	if !p.Valid() {
		return ""
	}
	return policyTable[p].legacy
}

// MarshalText encodes the canonical name.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, &UnknownPolicyError{Name: p.String()}
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes any name ParsePolicy accepts.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePolicy resolves a canonical or legacy policy name.
func ParsePolicy(name string) (Policy, error) {
	trimmed := strings.TrimSpace(name)
	for i, entry := range policyTable {
		if strings.EqualFold(trimmed, entry.name) || (entry.legacy != "" && strings.EqualFold(trimmed, entry.legacy)) {
			return Policy(i), nil
		}
	}
	return 0, &UnknownPolicyError{Name: name}
}

// Policies returns every policy in declaration order.
func Policies() []Policy {
	out := make([]Policy, len(policyTable))
	for i := range policyTable {
		out[i] = Policy(i)
	}
	return out
}

// DeterministicPolicies returns every policy except Mock, in declaration order.
func DeterministicPolicies() []Policy {
	var out []Policy
	for _, p := range Policies() {
		if p.Deterministic() {
			out = append(out, p)
		}
	}
	return out
}

// PolicyNames returns the canonical names in declaration order.
func PolicyNames() []string {
	names := make([]string, len(policyTable))
	for i, entry := range policyTable {
		names[i] = entry.name
	}
	return names
}

// Orders validates the scenario and returns the policy's order vector.
// rng is only used by PolicyMock; nil means the process-wide source.
func Orders(p Policy, s Scenario, horizon int, rng Rand) ([]int, error) {
	if !p.Valid() {
		return nil, &UnknownPolicyError{Name: p.String()}
	}
	if err := Validate(s, horizon); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = globalRand{}
	}
	return policyTable[p].orders(s, horizon, rng), nil
}
