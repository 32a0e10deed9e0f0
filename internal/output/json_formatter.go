package output

import (
	"encoding/json"

	"github.com/compass/financial-planner/internal/domain"
)

// JSONFormatter serializes the projection suite as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(plan *domain.ProfileProjection) ([]byte, error) {
	return json.MarshalIndent(plan, "", "  ")
}
