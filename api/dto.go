/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Scenarios and
  schedules keep the established PascalCase wire format (MPN, InvTgt, Rqt,
  ...) because existing clients read those names. Everything introduced by
  this service uses snake_case.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Policies:
    PolicyDTO

  Datasets:
    reorder.DatasetInfo (returned as is), SaveDatasetRequest

  Scheduling:
    SimulateResponse, ComparisonDTO

VALIDATION:
  Validation is done by factory and reorder, not in DTOs. DTOs are pure
  data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/scenario.go: ScenarioJSON type
*/
package api

import (
	"encoding/json"

	"github.com/warp/reorder-engine/reorder"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PolicyDTO describes an ordering policy.
type PolicyDTO struct {
	Name          string `json:"name"`
	Legacy        string `json:"legacy,omitempty"`
	Description   string `json:"description"`
	Deterministic bool   `json:"deterministic"`
}

// SaveDatasetRequest uploads a named dataset. Scenarios are raw JSON so
// they go through the same decoding as POST /api/orders.
type SaveDatasetRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Scenarios   json.RawMessage `json:"scenarios"`
}

// SimulateResponse pairs the scenarios of a source with their schedules.
type SimulateResponse struct {
	RunID     string             `json:"run_id"`
	Source    string             `json:"source"`
	Policy    string             `json:"policy"`
	Scenarios []reorder.Scenario `json:"scenarios"`
	Schedules []reorder.Schedule `json:"schedules"`
}

// ComparisonDTO is one policy's outcome in a comparison.
type ComparisonDTO struct {
	Policy   string           `json:"policy"`
	Schedule reorder.Schedule `json:"schedule"`
	Summary  reorder.Summary  `json:"summary"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Horizon int    `json:"horizon"`
}

// ErrorResponse is returned on errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toPolicyDTO(p reorder.Policy) PolicyDTO {
	return PolicyDTO{
		Name:          p.String(),
		Legacy:        p.Legacy(),
		Description:   p.Description(),
		Deterministic: p.Deterministic(),
	}
}

func toComparisonDTOs(comparisons []reorder.Comparison) []ComparisonDTO {
	dtos := make([]ComparisonDTO, len(comparisons))
	for i, c := range comparisons {
		dtos[i] = ComparisonDTO{
			Policy:   c.Policy.String(),
			Schedule: c.Schedule,
			Summary:  c.Summary,
		}
	}
	return dtos
}
