/*
Package factory provides JSON to Go scenario conversion.

PURPOSE:
  Converts the JSON payloads exchanged with scenario sources and the
  presentation layer into reorder.Scenario and reorder.Schedule values.
  Field names follow the established wire format, so existing clients
  keep working.

WHY A SEPARATE PACKAGE?
  - The engine stays free of wire concerns
  - Missing fields are reported by name instead of silently becoming 0
  - UI-only fields (Sel) are accepted and dropped in one place

JSON SCHEMA (scenario):
  {
    "Sel": false,
    "MPN": "MPN_ABC",
    "InvTgt": 100,
    "SStok": 5,
    "LdTm": 2,
    "MOQ": 20,
    "PkQty": 5,
    "Rqt": [50, 50, 50, 50, 50],
    "Rec": [0, 0, 0, 0, 0],
    "Inv": [100]
  }

  Inv is optional. When present only Inv[0] matters (starting inventory).

KEY FEATURES:
  - Accepts a single object or an array
  - Required scalar fields must be present
  - Output values never share slices with the decoder's buffers

USAGE:
  scenarios, err := factory.ParseScenarios(body)
  if err != nil {
      // errors.Is(err, reorder.ErrInvalidScenario) for missing fields
  }

SEE ALSO:
  - reorder/types.go: Scenario and Schedule
  - api/handlers.go: Decodes request bodies through this package
*/
package factory

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/warp/reorder-engine/reorder"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScenarioJSON is the JSON representation of a production scenario.
// Scalars are pointers so a missing field can be told apart from zero.
type ScenarioJSON struct {
	Sel    *bool   `json:"Sel,omitempty"` // UI selection state, ignored
	MPN    *string `json:"MPN"`
	InvTgt *int    `json:"InvTgt"`
	SStok  *int    `json:"SStok"`
	LdTm   *int    `json:"LdTm"`
	MOQ    *int    `json:"MOQ"`
	PkQty  *int    `json:"PkQty"`
	Rqt    []int   `json:"Rqt"`
	Rec    []int   `json:"Rec"`
	Inv    []int   `json:"Inv,omitempty"`
}

// ParseScenarios decodes a JSON array of scenarios, or a single scenario
// object, into reorder.Scenario values in input order.
func ParseScenarios(data []byte) ([]reorder.Scenario, error) {
	var raw []ScenarioJSON
	if err := decodeOneOrMany(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}

	out := make([]reorder.Scenario, len(raw))
	for i, sj := range raw {
		s, err := FromJSON(sj)
		if err != nil {
			return nil, &reorder.ScenarioError{Index: i, MPN: deref(sj.MPN), Err: err}
		}
		out[i] = s
	}
	return out, nil
}

// FromJSON converts ScenarioJSON to a scenario, checking required fields.
// Range and length checks are left to reorder.Validate, which knows the
// horizon.
func FromJSON(sj ScenarioJSON) (reorder.Scenario, error) {
	mpn := deref(sj.MPN)
	missing := func(field string) error {
		return &reorder.ValidationError{MPN: mpn, Field: field, Reason: "is required", Kind: reorder.ErrInvalidScenario}
	}

	switch {
	case sj.MPN == nil || *sj.MPN == "":
		return reorder.Scenario{}, missing("MPN")
	case sj.InvTgt == nil:
		return reorder.Scenario{}, missing("InvTgt")
	case sj.LdTm == nil:
		return reorder.Scenario{}, missing("LdTm")
	case sj.MOQ == nil:
		return reorder.Scenario{}, missing("MOQ")
	case sj.PkQty == nil:
		return reorder.Scenario{}, missing("PkQty")
	case sj.Rqt == nil:
		return reorder.Scenario{}, missing("Rqt")
	case sj.Rec == nil:
		return reorder.Scenario{}, missing("Rec")
	}

	s := reorder.Scenario{
		MPN:    mpn,
		InvTgt: *sj.InvTgt,
		LdTm:   *sj.LdTm,
		MOQ:    *sj.MOQ,
		PkQty:  *sj.PkQty,
		Rqt:    append([]int(nil), sj.Rqt...),
		Rec:    append([]int(nil), sj.Rec...),
	}
	// Safety stock defaults to none.
	if sj.SStok != nil {
		s.SStok = *sj.SStok
	}
	if len(sj.Inv) > 0 {
		s.Inv = append([]int(nil), sj.Inv...)
	}
	return s, nil
}

// ToJSON converts a scenario to its JSON representation.
func ToJSON(s reorder.Scenario) ScenarioJSON {
	return ScenarioJSON{
		MPN:    &s.MPN,
		InvTgt: &s.InvTgt,
		SStok:  &s.SStok,
		LdTm:   &s.LdTm,
		MOQ:    &s.MOQ,
		PkQty:  &s.PkQty,
		Rqt:    append([]int(nil), s.Rqt...),
		Rec:    append([]int(nil), s.Rec...),
		Inv:    append([]int(nil), s.Inv...),
	}
}

// ParseSchedules decodes a JSON array of schedules, or a single schedule.
func ParseSchedules(data []byte) ([]reorder.Schedule, error) {
	var out []reorder.Schedule
	if err := decodeOneOrMany(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	return out, nil
}

// decodeOneOrMany decodes either a JSON array into *[]T or a single object
// as a one-element slice.
func decodeOneOrMany[T any](data []byte, out *[]T) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty body")
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var one T
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return err
	}
	*out = []T{one}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
