package household

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *Profile {
	return &Profile{
		Name:           "Test User",
		DateOfBirth:    "1990-04-12",
		RiskPercentage: 60,
		MonthlyIncome:  80000,
		AnnualIncome:   240000,
		Expenses: ExpenseSet{
			Rent:          20000,
			Utilities:     3000,
			Transport:     4000,
			Food:          10000,
			Entertainment: 3000,
		},
		Loans: []Loan{
			{Name: "car", EMI: 12000},
			{Name: "phone", EMI: 3000},
		},
		HealthInsurance: InsurancePremium{Invested: true, Amount: 24000, Frequency: PremiumYearly},
		TermInsurance:   InsurancePremium{Invested: true, Amount: 3000, Frequency: PremiumQuarterly},
		MonthlySIP:      15000,
		EmergencyFund:   700000,
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(sampleProfile(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, s.TotalMonthlyIncome)
	assert.Equal(t, 40000.0, s.TotalMonthlyExpenses)
	assert.Equal(t, 15000.0, s.TotalMonthlyEMI)
	assert.Equal(t, 3000.0, s.TotalMonthlyInsurance)
	assert.Equal(t, 42000.0, s.NetMonthlyCashflow)
	assert.False(t, s.NeedsAdjustment)

	assert.Equal(t, 40.0, s.Ratios.ExpensePct)
	assert.Equal(t, 15.0, s.Ratios.EMIPct)
	assert.Equal(t, 18.0, s.Ratios.InvestmentPct)
	assert.True(t, s.Ratios.ExpenseOnTrack)
	assert.True(t, s.Ratios.EMIOnTrack)
	assert.False(t, s.Ratios.InvestmentOnTrack)

	assert.Equal(t, EmergencyGood, s.EmergencyFund.Status)
	assert.Equal(t, 600000.0, s.EmergencyFund.MinTarget)
	assert.Equal(t, 1800000.0, s.EmergencyFund.MaxTarget)
}

func TestSummarizeSIPVariant(t *testing.T) {
	s, err := Summarize(sampleProfile(), Options{IncludeSIPInCashflow: true})
	require.NoError(t, err)

	assert.Equal(t, 27000.0, s.NetMonthlyCashflow)
}

func TestSummarizeDoesNotMutateProfile(t *testing.T) {
	p := sampleProfile()
	before := *p
	loans := append([]Loan(nil), p.Loans...)

	_, err := Summarize(p, Options{IncludeSIPInCashflow: true})
	require.NoError(t, err)

	assert.Equal(t, before.MonthlyIncome, p.MonthlyIncome)
	assert.Equal(t, before.Expenses, p.Expenses)
	assert.Equal(t, loans, p.Loans)
}

func TestSummarizeNonPositiveCashflow(t *testing.T) {
	p := sampleProfile()
	p.Expenses.Other = 90000

	s, err := Summarize(p, Options{})
	require.NoError(t, err, "negative cashflow is a result, not a failure")

	assert.Less(t, s.NetMonthlyCashflow, 0.0)
	assert.True(t, s.NeedsAdjustment)
	assert.NotEmpty(t, s.Advice)
	assert.False(t, s.Ratios.ExpenseOnTrack)
}

func TestSummarizeZeroIncome(t *testing.T) {
	p := &Profile{Expenses: ExpenseSet{Food: 5000}}

	s, err := Summarize(p, Options{})
	require.NoError(t, err)

	assert.True(t, s.NeedsAdjustment)
	assert.Equal(t, Ratios{}, s.Ratios)
}

func TestRatiosAreIndependentAndNonNegative(t *testing.T) {
	p := &Profile{
		MonthlyIncome: 50000,
		Expenses:      ExpenseSet{Rent: 30000, Food: 10000},
		Loans:         []Loan{{EMI: 20000}},
		MonthlySIP:    15000,
	}

	s, err := Summarize(p, Options{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, s.Ratios.ExpensePct, 0.0)
	assert.GreaterOrEqual(t, s.Ratios.EMIPct, 0.0)
	assert.GreaterOrEqual(t, s.Ratios.InvestmentPct, 0.0)
	assert.Equal(t, 80.0, s.Ratios.ExpensePct)
	assert.Equal(t, 40.0, s.Ratios.EMIPct)
	assert.Equal(t, 30.0, s.Ratios.InvestmentPct)
	// 150%: доли не обязаны давать 100
	assert.NotEqual(t, 100.0, s.Ratios.ExpensePct+s.Ratios.EMIPct+s.Ratios.InvestmentPct)
}

func TestEmergencyBand(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		want    EmergencyStatus
	}{
		{"below six months", 50000, EmergencyLow},
		{"exactly six months", 60000, EmergencyGood},
		{"within band", 120000, EmergencyGood},
		{"exactly eighteen months", 180000, EmergencyGood},
		{"above band", 200000, EmergencyHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emergencyBand(tt.balance, 10000).Status)
		})
	}
}

func TestInsurancePremiumMonthly(t *testing.T) {
	tests := []struct {
		name    string
		premium InsurancePremium
		want    float64
		wantErr bool
	}{
		{"monthly", InsurancePremium{Invested: true, Amount: 1200, Frequency: PremiumMonthly}, 1200, false},
		{"quarterly", InsurancePremium{Invested: true, Amount: 1200, Frequency: PremiumQuarterly}, 400, false},
		{"half-yearly", InsurancePremium{Invested: true, Amount: 1200, Frequency: PremiumHalfYearly}, 200, false},
		{"yearly", InsurancePremium{Invested: true, Amount: 1200, Frequency: PremiumYearly}, 100, false},
		{"not invested", InsurancePremium{Invested: false, Amount: 1200, Frequency: PremiumMonthly}, 0, false},
		{"unknown frequency", InsurancePremium{Invested: true, Amount: 1200, Frequency: "weekly"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.premium.Monthly()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProfile)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSummarizeRejectsNegativeAmounts(t *testing.T) {
	p := sampleProfile()
	p.Loans[1].EMI = -10

	_, err := Summarize(p, Options{})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestValidateReportsFirstInvalidField(t *testing.T) {
	p := sampleProfile()
	p.MonthlyIncome = -1
	p.MonthlySIP = -1
	p.Expenses.Food = math.NaN()

	for i := 0; i < 20; i++ {
		err := p.Validate()
		require.ErrorIs(t, err, ErrInvalidProfile)
		assert.Contains(t, err.Error(), "monthly_income")
	}
}

func TestRatioThresholdsUseExactShares(t *testing.T) {
	r := budgetRatios(100000, 50004, 30004, 19996)

	assert.Equal(t, 50.0, r.ExpensePct)
	assert.False(t, r.ExpenseOnTrack)
	assert.Equal(t, 30.0, r.EMIPct)
	assert.False(t, r.EMIOnTrack)
	assert.Equal(t, 20.0, r.InvestmentPct)
	assert.False(t, r.InvestmentOnTrack)
}
