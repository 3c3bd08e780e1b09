// ABOUTME: Request DTO for the salary calculator endpoint
// ABOUTME: Omitted fields fall back to the calculator's defaults

package requests

import "kvk-insights-api/core/domain"

// SalaryRequest represents the request body for a salary calculation
type SalaryRequest struct {
	Amount           float64 `json:"amount" exclusiveMinimum:"0" doc:"Salary amount in euros"`
	AmountType       string  `json:"amountType,omitempty" enum:"gross,net" default:"gross" doc:"Whether amount is gross or net"`
	Period           string  `json:"period,omitempty" enum:"year,month,week,hour" default:"year" doc:"Period the amount covers"`
	TaxYear          int     `json:"taxYear,omitempty" enum:"2024,2025" doc:"Tax year; defaults to the latest supported"`
	PartTimeFactor   float64 `json:"partTimeFactor,omitempty" minimum:"0" maximum:"1" doc:"Part-time fraction, 1 for full-time"`
	HoursPerWeek     float64 `json:"hoursPerWeek,omitempty" minimum:"0" maximum:"80" doc:"Contract hours, used for hourly amounts"`
	HolidayAllowance string  `json:"holidayAllowance,omitempty" enum:"included,added,none" default:"added" doc:"How the 8% holiday allowance relates to amount"`
	ThirteenthMonth  bool    `json:"thirteenthMonth,omitempty" doc:"Pay a thirteenth month"`
	ThirtyPercent    bool    `json:"thirtyPercentRuling,omitempty" doc:"Apply the 30% ruling"`
	PensionPercent   float64 `json:"pensionPercent,omitempty" minimum:"0" maximum:"50" doc:"Employee pension contribution as % of gross"`
	CompanyCar       float64 `json:"companyCarAddition,omitempty" minimum:"0" doc:"Yearly taxable company car addition"`
}

// ToInput converts the request to calculator input
func (r *SalaryRequest) ToInput() domain.SalaryInput {
	return domain.SalaryInput{
		Amount:             r.Amount,
		AmountType:         domain.AmountType(r.AmountType),
		Period:             domain.Period(r.Period),
		TaxYear:            r.TaxYear,
		PartTimeFactor:     r.PartTimeFactor,
		HoursPerWeek:       r.HoursPerWeek,
		HolidayAllowance:   domain.HolidayAllowance(r.HolidayAllowance),
		ThirteenthMonth:    r.ThirteenthMonth,
		ThirtyPercent:      r.ThirtyPercent,
		PensionPercent:     r.PensionPercent,
		CompanyCarAddition: r.CompanyCar,
	}
}
