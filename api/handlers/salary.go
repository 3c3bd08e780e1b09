// ABOUTME: Salary calculator handler for the Huma API
// ABOUTME: Gated by the salary_calculator feature flag

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kvk-insights-api/api/dto/requests"
	"kvk-insights-api/core/domain"
	"kvk-insights-api/pkg/featureflags"
)

// SalaryCalculator computes salary breakdowns
type SalaryCalculator interface {
	Calculate(input domain.SalaryInput) (*domain.SalaryBreakdown, error)
}

// SalaryHandler handles salary calculation requests
type SalaryHandler struct {
	calculator SalaryCalculator
}

// NewSalaryHandler creates a new salary handler
func NewSalaryHandler(calculator SalaryCalculator) *SalaryHandler {
	return &SalaryHandler{calculator: calculator}
}

// RegisterRoutes registers the salary routes
func (h *SalaryHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "calculateSalary",
		Method:      http.MethodPost,
		Path:        "/salary/calculate",
		Summary:     "Calculate Dutch net salary",
		Description: "Applies the income tax brackets and tax credits of the chosen year and returns comparison scenarios",
		Tags:        []string{"Salary"},
	}, h.Calculate)
}

// SalaryInput defines the input for the Calculate operation
type SalaryInput struct {
	Body requests.SalaryRequest
}

// SalaryOutput defines the output for the Calculate operation
type SalaryOutput struct {
	Body *domain.SalaryBreakdown
}

// Calculate handles the POST /salary/calculate endpoint
func (h *SalaryHandler) Calculate(ctx context.Context, input *SalaryInput) (*SalaryOutput, error) {
	if !featureflags.IsEnabled(ctx, featureflags.SalaryCalculator) {
		return nil, huma.Error404NotFound("Salary calculator is disabled")
	}

	breakdown, err := h.calculator.Calculate(input.Body.ToInput())
	if err != nil {
		return nil, toHumaError(err)
	}
	return &SalaryOutput{Body: breakdown}, nil
}
