package calculations

import (
	"errors"
	"fmt"
)

// ErrInsufficientInput означает, что входных данных недостаточно для расчета.
// Это не сбой: вызывающий код трактует его как "посчитать пока нельзя".
var ErrInsufficientInput = errors.New("insufficient input")

func insufficient(field string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientInput, field)
}

// InterestModel задает модель начисления процентов по кредиту
type InterestModel string

const (
	InterestReducing InterestModel = "reducing"
	InterestFlat     InterestModel = "flat"
)

// Frequency задает периодичность реинвестирования
type Frequency string

const (
	FrequencyYearly     Frequency = "yearly"
	FrequencyHalfYearly Frequency = "half-yearly"
	FrequencyQuarterly  Frequency = "quarterly"
)

// PeriodsPerYear возвращает число периодов в году для частоты
func (f Frequency) PeriodsPerYear() (int, error) {
	switch f {
	case FrequencyYearly, "":
		return 1, nil
	case FrequencyHalfYearly:
		return 2, nil
	case FrequencyQuarterly:
		return 4, nil
	default:
		return 0, fmt.Errorf("unknown reinvestment frequency %q", f)
	}
}

// ProjectionPoint представляет одну точку многолетней проекции
type ProjectionPoint struct {
	Year                   int     `json:"year"`
	ProjectedValue         float64 `json:"projected_value"`
	InvestedSoFar          float64 `json:"invested_so_far"`
	InflationAdjustedValue float64 `json:"inflation_adjusted_value"`
}

// AmortizationRow представляет один год графика погашения
type AmortizationRow struct {
	Year                int     `json:"year"`
	EMIPaid             float64 `json:"emi_paid"`
	PrincipalPaid       float64 `json:"principal_paid"`
	InterestPaid        float64 `json:"interest_paid"`
	EndingBalance       float64 `json:"ending_balance"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
	CumulativeInterest  float64 `json:"cumulative_interest"`
}

// GrowthSummary представляет сводку по росту вложений
type GrowthSummary struct {
	FutureValue            float64 `json:"future_value"`
	InvestedAmount         float64 `json:"invested_amount"`
	EstimatedReturns       float64 `json:"estimated_returns"`
	InflationAdjustedValue float64 `json:"inflation_adjusted_value"`
}

// CompoundInput содержит параметры расчета сложного процента
type CompoundInput struct {
	Principal          float64 `json:"principal"`
	AnnualRatePercent  float64 `json:"annual_rate_percent"`
	Years              float64 `json:"years"`
	InflationPercent   float64 `json:"inflation_percent"`
	CompoundingPerYear int     `json:"compounding_per_year,omitempty"`
}

// SIPInput содержит параметры расчета регулярных ежемесячных взносов
type SIPInput struct {
	MonthlyContribution float64 `json:"monthly_contribution"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
	Years               float64 `json:"years"`
	InflationPercent    float64 `json:"inflation_percent"`
}

// SIPResult представляет результат расчета SIP
type SIPResult struct {
	GrowthSummary
	MonthlyRate float64 `json:"monthly_rate"`
	Months      int     `json:"months"`
}

// LumpsumInput содержит параметры расчета единовременного вложения
// с регулярным реинвестированием
type LumpsumInput struct {
	InitialAmount     float64   `json:"initial_amount"`
	RecurringAmount   float64   `json:"recurring_amount"`
	Frequency         Frequency `json:"frequency"`
	AnnualRatePercent float64   `json:"annual_rate_percent"`
	Years             int       `json:"years"`
	InflationPercent  float64   `json:"inflation_percent"`
}

// LumpsumResult представляет результат расчета единовременного вложения
type LumpsumResult struct {
	StartYear                   int               `json:"start_year"`
	LumpsumValue                float64           `json:"lumpsum_value"`
	RecurringValue              float64           `json:"recurring_value"`
	TotalValue                  float64           `json:"total_value"`
	TotalInvestment             float64           `json:"total_investment"`
	EstimatedReturns            float64           `json:"estimated_returns"`
	InflationAdjustedTotalValue float64           `json:"inflation_adjusted_total_value"`
	Projection                  []ProjectionPoint `json:"projection"`
}

// InvestmentEntry представляет одно вложение с собственным годом старта и инфляцией
type InvestmentEntry struct {
	Amount           float64 `json:"amount"`
	StartYear        int     `json:"start_year"`
	InflationPercent float64 `json:"inflation_percent"`
}

// GoalInput содержит параметры проекции набора нерегулярных вложений
type GoalInput struct {
	Entries            []InvestmentEntry `json:"entries"`
	AnnualRatePercent  float64           `json:"annual_rate_percent"`
	TotalYears         int               `json:"total_years"`
	AdjustForInflation bool              `json:"adjust_for_inflation"`
}

// GoalResult представляет проекцию целевых накоплений
type GoalResult struct {
	StartYear              int               `json:"start_year"`
	FinalValue             float64           `json:"final_value"`
	FinalInvested          float64           `json:"final_invested"`
	InflationAdjustedValue float64           `json:"inflation_adjusted_value"`
	Projection             []ProjectionPoint `json:"projection"`
}

// LoanInput содержит параметры кредита
type LoanInput struct {
	Principal         float64       `json:"principal"`
	AnnualRatePercent float64       `json:"annual_rate_percent"`
	TenureYears       float64       `json:"tenure_years"`
	Model             InterestModel `json:"interest_model"`
}

// EMISummary представляет сводку по кредиту
type EMISummary struct {
	Model             InterestModel `json:"interest_model"`
	PrincipalAmount   float64       `json:"principal_amount"`
	AnnualRatePercent float64       `json:"annual_rate_percent"`
	Months            int           `json:"months"`
	MonthlyEMI        float64       `json:"monthly_emi"`
	TotalInterest     float64       `json:"total_interest"`
	TotalPayment      float64       `json:"total_payment"`
	FirstYearInterest float64       `json:"first_year_interest"`
}

// EMIResult представляет результат расчета кредита с графиком по годам
type EMIResult struct {
	Summary   EMISummary        `json:"summary"`
	StartYear int               `json:"start_year"`
	Schedule  []AmortizationRow `json:"schedule"`
}

// ComparisonResult представляет результат сравнения моделей начисления процентов
type ComparisonResult struct {
	Reducing       EMIResult     `json:"reducing"`
	Flat           EMIResult     `json:"flat"`
	CheaperModel   InterestModel `json:"cheaper_model,omitempty"`
	InterestDiff   float64       `json:"interest_diff"`
	EMIDiff        float64       `json:"emi_diff"`
	Recommendation string        `json:"recommendation"`
}
