package household

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/finplan-go/internal/calculations"
	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// ErrInvalidProfile означает, что в профиле есть недопустимые значения
var ErrInvalidProfile = errors.New("invalid financial profile")

// PremiumFrequency задает периодичность оплаты страховой премии
type PremiumFrequency string

const (
	PremiumMonthly    PremiumFrequency = "monthly"
	PremiumQuarterly  PremiumFrequency = "quarterly"
	PremiumHalfYearly PremiumFrequency = "half-yearly"
	PremiumYearly     PremiumFrequency = "yearly"
)

// InsurancePremium описывает страховой полис
type InsurancePremium struct {
	Invested  bool             `json:"invested"`
	Amount    float64          `json:"amount"`
	Frequency PremiumFrequency `json:"frequency"`
}

// Monthly приводит премию к ежемесячной сумме
func (p InsurancePremium) Monthly() (float64, error) {
	if !p.Invested {
		return 0, nil
	}
	if p.Amount < 0 || !utils.IsFinite(p.Amount) {
		return 0, fmt.Errorf("%w: premium amount %v", ErrInvalidProfile, p.Amount)
	}

	switch p.Frequency {
	case PremiumMonthly:
		return p.Amount, nil
	case PremiumQuarterly:
		return p.Amount / 3, nil
	case PremiumHalfYearly:
		return p.Amount / 6, nil
	case PremiumYearly:
		return p.Amount / 12, nil
	default:
		return 0, fmt.Errorf("%w: unknown premium frequency %q", ErrInvalidProfile, p.Frequency)
	}
}

// ExpenseSet - ежемесячные расходы по фиксированным категориям.
// Незаполненные категории считаются нулевыми.
type ExpenseSet struct {
	Rent          float64 `json:"rent"`
	Utilities     float64 `json:"utilities"`
	Transport     float64 `json:"transport"`
	Food          float64 `json:"food"`
	Entertainment float64 `json:"entertainment"`
	Healthcare    float64 `json:"healthcare"`
	Other         float64 `json:"other"`
}

// Total суммирует все категории
func (e ExpenseSet) Total() float64 {
	return sumMoney(e.Rent, e.Utilities, e.Transport, e.Food, e.Entertainment, e.Healthcare, e.Other)
}

// Loan - действующий кредит. EMI берется как указано пользователем,
// без пересчета.
type Loan struct {
	Name              string                     `json:"name"`
	Principal         float64                    `json:"principal"`
	AnnualRatePercent float64                    `json:"annual_rate_percent"`
	TenureYears       float64                    `json:"tenure_years"`
	EMI               float64                    `json:"emi"`
	InterestModel     calculations.InterestModel `json:"interest_model"`
}

// Profile - финансовый профиль пользователя
type Profile struct {
	Name            string           `json:"name"`
	DateOfBirth     string           `json:"dob"`
	RiskPercentage  float64          `json:"risk_percentage"`
	MonthlyIncome   float64          `json:"monthly_income"`
	AnnualIncome    float64          `json:"annual_income"`
	Expenses        ExpenseSet       `json:"expenses"`
	Loans           []Loan           `json:"loans"`
	HealthInsurance InsurancePremium `json:"health_insurance"`
	TermInsurance   InsurancePremium `json:"term_insurance"`
	MonthlySIP      float64          `json:"monthly_sip"`
	EmergencyFund   float64          `json:"emergency_fund"`
}

// Validate проверяет, что все суммы конечны и неотрицательны
func (p *Profile) Validate() error {
	amounts := []struct {
		name  string
		value float64
	}{
		{"monthly_income", p.MonthlyIncome},
		{"annual_income", p.AnnualIncome},
		{"monthly_sip", p.MonthlySIP},
		{"emergency_fund", p.EmergencyFund},
		{"expenses.rent", p.Expenses.Rent},
		{"expenses.utilities", p.Expenses.Utilities},
		{"expenses.transport", p.Expenses.Transport},
		{"expenses.food", p.Expenses.Food},
		{"expenses.entertainment", p.Expenses.Entertainment},
		{"expenses.healthcare", p.Expenses.Healthcare},
		{"expenses.other", p.Expenses.Other},
	}

	for _, a := range amounts {
		if a.value < 0 || !utils.IsFinite(a.value) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidProfile, a.name)
		}
	}
	for i, l := range p.Loans {
		if l.EMI < 0 || !utils.IsFinite(l.EMI) {
			return fmt.Errorf("%w: loans[%d].emi must be a non-negative number", ErrInvalidProfile, i)
		}
	}
	if !(p.RiskPercentage >= 0 && p.RiskPercentage <= 100) {
		return fmt.Errorf("%w: risk_percentage must be within [0; 100]", ErrInvalidProfile)
	}
	return nil
}
