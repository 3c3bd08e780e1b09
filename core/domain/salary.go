// ABOUTME: Salary calculator domain models: input, bracketed breakdown and scenarios
// ABOUTME: Amounts are euros; all derived totals are yearly unless named otherwise

package domain

// AmountType says whether the input amount is gross or net
type AmountType string

const (
	AmountGross AmountType = "gross"
	AmountNet   AmountType = "net"
)

// Period is the time unit of the input amount
type Period string

const (
	PeriodYear  Period = "year"
	PeriodMonth Period = "month"
	PeriodWeek  Period = "week"
	PeriodHour  Period = "hour"
)

// HolidayAllowance says how the statutory 8% holiday allowance relates to the amount
type HolidayAllowance string

const (
	// HolidayIncluded means the amount already contains the allowance
	HolidayIncluded HolidayAllowance = "included"
	// HolidayAdded means the allowance is paid on top of the amount
	HolidayAdded HolidayAllowance = "added"
	// HolidayNone means no allowance is paid
	HolidayNone HolidayAllowance = "none"
)

// SalaryInput describes one calculation request
type SalaryInput struct {
	Amount           float64          `json:"amount"`
	AmountType       AmountType       `json:"amountType"`
	Period           Period           `json:"period"`
	TaxYear          int              `json:"taxYear"`
	PartTimeFactor   float64          `json:"partTimeFactor"`
	HoursPerWeek     float64          `json:"hoursPerWeek"`
	HolidayAllowance HolidayAllowance `json:"holidayAllowance"`
	ThirteenthMonth  bool             `json:"thirteenthMonth"`
	ThirtyPercent    bool             `json:"thirtyPercentRuling"`
	// PensionPercent is the employee pension contribution as a percentage of gross
	PensionPercent float64 `json:"pensionPercent"`
	// CompanyCarAddition is the yearly taxable benefit for private use of a lease car
	CompanyCarAddition float64 `json:"companyCarAddition"`
}

// BracketTax is the tax due in one bracket
type BracketTax struct {
	From    float64  `json:"from"`
	To      *float64 `json:"to"`
	Rate    float64  `json:"rate"`
	Taxable float64  `json:"taxable"`
	Tax     float64  `json:"tax"`
}

// Scenario is a comparison variant of the main calculation
type Scenario struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	GrossYear    float64 `json:"grossYear"`
	NetYear      float64 `json:"netYear"`
	NetMonth     float64 `json:"netMonth"`
	DeltaNetYear float64 `json:"deltaNetYear"`
}

// SalaryBreakdown is the full result of a calculation
type SalaryBreakdown struct {
	Input SalaryInput `json:"input"`

	BaseSalaryYear   float64 `json:"baseSalaryYear"`
	HolidayAllowance float64 `json:"holidayAllowance"`
	ThirteenthMonth  float64 `json:"thirteenthMonth"`
	GrossYear        float64 `json:"grossYear"`

	PensionDeduction    float64 `json:"pensionDeduction"`
	ThirtyPercentExempt float64 `json:"thirtyPercentExemption"`
	CompanyCarAddition  float64 `json:"companyCarAddition"`
	TaxableIncome       float64 `json:"taxableIncome"`

	Brackets         []BracketTax `json:"brackets"`
	TaxBeforeCredits float64      `json:"taxBeforeCredits"`
	GeneralCredit    float64      `json:"generalTaxCredit"`
	LabourCredit     float64      `json:"labourTaxCredit"`
	IncomeTax        float64      `json:"incomeTax"`

	NetYear       float64 `json:"netYear"`
	NetMonth      float64 `json:"netMonth"`
	EffectiveRate float64 `json:"effectiveRate"`

	Scenarios []Scenario `json:"scenarios,omitempty"`
}
