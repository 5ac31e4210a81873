package household

import (
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// Пороги правила 50-30-20 и границы резервного фонда
const (
	ExpenseLimitPct   = 50.0
	EMILimitPct       = 30.0
	InvestmentMinPct  = 20.0
	EmergencyMinMonth = 6.0
	EmergencyMaxMonth = 18.0
)

// EmergencyStatus - оценка достаточности резервного фонда
type EmergencyStatus string

const (
	EmergencyLow  EmergencyStatus = "low"
	EmergencyGood EmergencyStatus = "good"
	EmergencyHigh EmergencyStatus = "high"
)

// Options задает вариант расчета денежного потока
type Options struct {
	// IncludeSIPInCashflow дополнительно вычитает ежемесячный SIP из чистого потока
	IncludeSIPInCashflow bool `json:"include_sip_in_cashflow"`
}

// Ratios - доли бюджета в процентах от совокупного месячного дохода.
// Считаются независимо и не обязаны давать в сумме 100.
type Ratios struct {
	ExpensePct        float64 `json:"expense_pct"`
	EMIPct            float64 `json:"emi_pct"`
	InvestmentPct     float64 `json:"investment_pct"`
	ExpenseOnTrack    bool    `json:"expense_on_track"`
	EMIOnTrack        bool    `json:"emi_on_track"`
	InvestmentOnTrack bool    `json:"investment_on_track"`
}

// EmergencyFund - сравнение резервного фонда с диапазоном [6x; 18x] месячного дохода
type EmergencyFund struct {
	Balance   float64         `json:"balance"`
	MinTarget float64         `json:"min_target"`
	MaxTarget float64         `json:"max_target"`
	Status    EmergencyStatus `json:"status"`
}

// Summary - производные показатели по одному снимку профиля
type Summary struct {
	TotalMonthlyIncome    float64       `json:"total_monthly_income"`
	TotalMonthlyExpenses  float64       `json:"total_monthly_expenses"`
	TotalMonthlyEMI       float64       `json:"total_monthly_emi"`
	TotalMonthlyInsurance float64       `json:"total_monthly_insurance"`
	MonthlySIP            float64       `json:"monthly_sip"`
	NetMonthlyCashflow    float64       `json:"net_monthly_cashflow"`
	NeedsAdjustment       bool          `json:"needs_adjustment"`
	Advice                string        `json:"advice,omitempty"`
	Ratios                Ratios        `json:"ratios"`
	EmergencyFund         EmergencyFund `json:"emergency_fund"`
}

// Summarize сводит доходы, расходы, платежи по кредитам и страховки
// в чистый месячный поток и бюджетные доли. Профиль не изменяется.
func Summarize(p *Profile, opts Options) (*Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	health, err := p.HealthInsurance.Monthly()
	if err != nil {
		return nil, err
	}
	term, err := p.TermInsurance.Monthly()
	if err != nil {
		return nil, err
	}

	expenses := p.Expenses.Total()

	emis := make([]float64, 0, len(p.Loans))
	for _, l := range p.Loans {
		emis = append(emis, l.EMI)
	}
	emi := sumMoney(emis...)

	income := sumMoney(p.MonthlyIncome, p.AnnualIncome/12)
	insurance := sumMoney(health, term)

	net := income - expenses - emi - insurance
	if opts.IncludeSIPInCashflow {
		net -= p.MonthlySIP
	}

	s := &Summary{
		TotalMonthlyIncome:    utils.Round2(income),
		TotalMonthlyExpenses:  utils.Round2(expenses),
		TotalMonthlyEMI:       utils.Round2(emi),
		TotalMonthlyInsurance: utils.Round2(insurance),
		MonthlySIP:            utils.Round2(p.MonthlySIP),
		NetMonthlyCashflow:    utils.Round2(net),
		Ratios:                budgetRatios(income, expenses, emi, p.MonthlySIP+insurance),
		EmergencyFund:         emergencyBand(p.EmergencyFund, income),
	}

	switch {
	case income <= 0:
		s.NeedsAdjustment = true
		s.Advice = "No income recorded. Add monthly or annual income to compute budget ratios."
	case net <= 0:
		s.NeedsAdjustment = true
		s.Advice = "Monthly cashflow is not positive. Reduce expenses or loan obligations, or increase income."
	}

	return s, nil
}

func budgetRatios(income, expenses, emi, investments float64) Ratios {
	if income <= 0 {
		return Ratios{}
	}

	expensePct := expenses / income * 100
	emiPct := emi / income * 100
	investmentPct := investments / income * 100

	// Пороги сравниваются с точными долями, округление только для вывода
	return Ratios{
		ExpensePct:        utils.Round2(expensePct),
		EMIPct:            utils.Round2(emiPct),
		InvestmentPct:     utils.Round2(investmentPct),
		ExpenseOnTrack:    expensePct <= ExpenseLimitPct,
		EMIOnTrack:        emiPct <= EMILimitPct,
		InvestmentOnTrack: investmentPct >= InvestmentMinPct,
	}
}

func emergencyBand(balance, income float64) EmergencyFund {
	ef := EmergencyFund{
		Balance:   utils.Round2(balance),
		MinTarget: utils.Round2(income * EmergencyMinMonth),
		MaxTarget: utils.Round2(income * EmergencyMaxMonth),
		Status:    EmergencyGood,
	}

	switch {
	case balance < income*EmergencyMinMonth:
		ef.Status = EmergencyLow
	case balance > income*EmergencyMaxMonth:
		ef.Status = EmergencyHigh
	}

	return ef
}

// sumMoney складывает суммы без накопления ошибки двоичного представления
func sumMoney(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}
