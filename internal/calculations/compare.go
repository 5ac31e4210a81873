package calculations

import (
	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// CompareInterestModels сравнивает один и тот же кредит при начислении
// процентов на остаток и по плоской ставке
func CompareInterestModels(principal, annualRatePercent, tenureYears float64) (*ComparisonResult, error) {
	reducing, err := EMI(LoanInput{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureYears:       tenureYears,
		Model:             InterestReducing,
	})
	if err != nil {
		return nil, err
	}

	flat, err := EMI(LoanInput{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureYears:       tenureYears,
		Model:             InterestFlat,
	})
	if err != nil {
		return nil, err
	}

	interestDiff := utils.Round2(flat.Summary.TotalInterest - reducing.Summary.TotalInterest)
	emiDiff := utils.Round2(flat.Summary.MonthlyEMI - reducing.Summary.MonthlyEMI)

	var cheaper InterestModel
	var recommendation string

	switch {
	case interestDiff > 0:
		cheaper = InterestReducing
		recommendation = "Reducing-balance loan costs " + utils.FormatINR(interestDiff) +
			" less in interest. A flat rate quoted at the same number is considerably more expensive."
	case interestDiff < 0:
		cheaper = InterestFlat
		recommendation = "Flat-rate loan costs " + utils.FormatINR(-interestDiff) +
			" less in interest for these terms."
	default:
		recommendation = "Both interest models cost the same for these terms."
	}

	return &ComparisonResult{
		Reducing:       *reducing,
		Flat:           *flat,
		CheaperModel:   cheaper,
		InterestDiff:   interestDiff,
		EMIDiff:        emiDiff,
		Recommendation: recommendation,
	}, nil
}
