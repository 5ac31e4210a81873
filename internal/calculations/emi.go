package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// EMI рассчитывает ежемесячный платеж и годовой график погашения кредита
// для выбранной модели начисления процентов
func EMI(in LoanInput) (*EMIResult, error) {
	if !(in.Principal > 0) || !utils.IsFinite(in.Principal) {
		return nil, insufficient("principal")
	}
	if !(in.AnnualRatePercent > 0) || !utils.IsFinite(in.AnnualRatePercent) {
		return nil, insufficient("annual_rate_percent")
	}
	if !(in.TenureYears > 0) || !utils.IsFinite(in.TenureYears) {
		return nil, insufficient("tenure_years")
	}

	months := int(math.Round(in.TenureYears * 12))
	if months < 1 {
		return nil, insufficient("tenure_years")
	}

	switch in.Model {
	case InterestReducing, "":
		return ReducingBalanceEMI(in.Principal, in.AnnualRatePercent, months)
	case InterestFlat:
		return FlatRateEMI(in.Principal, in.AnnualRatePercent, months)
	default:
		return nil, insufficient(fmt.Sprintf("interest_model %q", in.Model))
	}
}

// ReducingBalanceEMI рассчитывает аннуитетный кредит с процентами на остаток долга
func ReducingBalanceEMI(principal, annualRatePercent float64, months int) (*EMIResult, error) {
	if err := checkLoanTerms(principal, annualRatePercent, months); err != nil {
		return nil, err
	}

	i := utils.ToFraction(annualRatePercent) / 12.0
	emi := principal / float64(months)
	if gain := growthMinusOne(i, months); gain > 0 {
		emi = principal * i * (1.0 + gain) / gain
	}

	sched := newYearlySchedule(months)
	remaining := principal

	for m := 1; m <= months; m++ {
		interest := remaining * i
		principalComponent := emi - interest
		if m == months {
			principalComponent = remaining
		}

		remaining -= principalComponent
		if remaining < -0.01 {
			return nil, fmt.Errorf("численная ошибка: остаток кредита стал отрицательным")
		}

		sched.add(m, principalComponent+interest, principalComponent, interest, remaining)
	}

	totalPayment := emi * float64(months)

	return &EMIResult{
		Summary: EMISummary{
			Model:             InterestReducing,
			PrincipalAmount:   utils.Round2(principal),
			AnnualRatePercent: utils.Round2(annualRatePercent),
			Months:            months,
			MonthlyEMI:        utils.Round2(emi),
			TotalInterest:     utils.Round2(totalPayment - principal),
			TotalPayment:      utils.Round2(totalPayment),
			FirstYearInterest: sched.firstYearInterest(),
		},
		StartYear: 1,
		Schedule:  sched.rows,
	}, nil
}

// FlatRateEMI рассчитывает кредит по плоской ставке: проценты начисляются
// на исходную сумму за весь срок и распределяются равномерно
func FlatRateEMI(principal, annualRatePercent float64, months int) (*EMIResult, error) {
	if err := checkLoanTerms(principal, annualRatePercent, months); err != nil {
		return nil, err
	}

	years := float64(months) / 12.0
	totalInterest := principal * utils.ToFraction(annualRatePercent) * years
	totalPayment := principal + totalInterest
	emi := totalPayment / float64(months)

	monthlyPrincipal := principal / float64(months)
	monthlyInterest := totalInterest / float64(months)

	sched := newYearlySchedule(months)
	remaining := principal

	for m := 1; m <= months; m++ {
		principalComponent := monthlyPrincipal
		if m == months {
			principalComponent = remaining
		}
		remaining -= principalComponent

		sched.add(m, principalComponent+monthlyInterest, principalComponent, monthlyInterest, remaining)
	}

	return &EMIResult{
		Summary: EMISummary{
			Model:             InterestFlat,
			PrincipalAmount:   utils.Round2(principal),
			AnnualRatePercent: utils.Round2(annualRatePercent),
			Months:            months,
			MonthlyEMI:        utils.Round2(emi),
			TotalInterest:     utils.Round2(totalInterest),
			TotalPayment:      utils.Round2(totalPayment),
			FirstYearInterest: sched.firstYearInterest(),
		},
		StartYear: 1,
		Schedule:  sched.rows,
	}, nil
}

func checkLoanTerms(principal, annualRatePercent float64, months int) error {
	switch {
	case !(principal > 0) || !utils.IsFinite(principal):
		return insufficient("principal")
	case !(annualRatePercent > 0) || !utils.IsFinite(annualRatePercent):
		return insufficient("annual_rate_percent")
	case months < 1:
		return insufficient("months")
	}
	return nil
}

// yearlySchedule сворачивает помесячные платежи в строки по годам кредита
type yearlySchedule struct {
	months int
	rows   []AmortizationRow

	yearEMI, yearPrincipal, yearInterest float64
	cumPrincipal, cumInterest            float64
}

func newYearlySchedule(months int) *yearlySchedule {
	return &yearlySchedule{
		months: months,
		rows:   make([]AmortizationRow, 0, (months+11)/12),
	}
}

func (s *yearlySchedule) add(month int, payment, principalComponent, interest, remaining float64) {
	s.yearEMI += payment
	s.yearPrincipal += principalComponent
	s.yearInterest += interest
	s.cumPrincipal += principalComponent
	s.cumInterest += interest

	if month%12 != 0 && month != s.months {
		return
	}

	// остаток не может быть отрицательным
	balance := math.Max(0, remaining)

	s.rows = append(s.rows, AmortizationRow{
		Year:                (month + 11) / 12,
		EMIPaid:             utils.Round2(s.yearEMI),
		PrincipalPaid:       utils.Round2(s.yearPrincipal),
		InterestPaid:        utils.Round2(s.yearInterest),
		EndingBalance:       utils.Round2(balance),
		CumulativePrincipal: utils.Round2(s.cumPrincipal),
		CumulativeInterest:  utils.Round2(s.cumInterest),
	})
	s.yearEMI, s.yearPrincipal, s.yearInterest = 0, 0, 0
}

func (s *yearlySchedule) firstYearInterest() float64 {
	if len(s.rows) == 0 {
		return 0
	}
	return s.rows[0].InterestPaid
}
