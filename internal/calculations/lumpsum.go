package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// LumpsumRecurring рассчитывает рост единовременного вложения вместе
// с регулярным реинвестированием и строит проекцию по годам (годы 0..N)
func LumpsumRecurring(in LumpsumInput) (*LumpsumResult, error) {
	if in.InitialAmount < 0 || !utils.IsFinite(in.InitialAmount) {
		return nil, insufficient("initial_amount")
	}
	if in.RecurringAmount < 0 || !utils.IsFinite(in.RecurringAmount) {
		return nil, insufficient("recurring_amount")
	}
	if in.InitialAmount == 0 && in.RecurringAmount == 0 {
		return nil, insufficient("initial_amount")
	}
	if in.AnnualRatePercent < 0 || !utils.IsFinite(in.AnnualRatePercent) {
		return nil, insufficient("annual_rate_percent")
	}
	if in.Years <= 0 {
		return nil, insufficient("years")
	}
	if in.InflationPercent < 0 || !utils.IsFinite(in.InflationPercent) {
		return nil, insufficient("inflation_percent")
	}

	ppy, err := in.Frequency.PeriodsPerYear()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientInput, err)
	}

	r := utils.ToFraction(in.AnnualRatePercent)
	periodicRate := r / float64(ppy)

	projection := make([]ProjectionPoint, 0, in.Years+1)
	var lumpsumValue, recurringValue float64

	for year := 0; year <= in.Years; year++ {
		periodsSoFar := year * ppy

		lumpsumValue = in.InitialAmount * math.Pow(1.0+r, float64(year))
		recurringValue = 0.0
		if in.RecurringAmount > 0 {
			recurringValue = annuityDue(in.RecurringAmount, periodicRate, periodsSoFar)
		}

		total := lumpsumValue + recurringValue
		invested := in.InitialAmount + in.RecurringAmount*float64(periodsSoFar)

		projection = append(projection, ProjectionPoint{
			Year:                   year,
			ProjectedValue:         utils.Round2(total),
			InvestedSoFar:          utils.Round2(invested),
			InflationAdjustedValue: utils.Round2(deflate(total, in.InflationPercent, float64(year))),
		})
	}

	totalValue := lumpsumValue + recurringValue
	totalInvestment := in.InitialAmount + in.RecurringAmount*float64(in.Years*ppy)

	return &LumpsumResult{
		StartYear:                   0,
		LumpsumValue:                utils.Round2(lumpsumValue),
		RecurringValue:              utils.Round2(recurringValue),
		TotalValue:                  utils.Round2(totalValue),
		TotalInvestment:             utils.Round2(totalInvestment),
		EstimatedReturns:            utils.Round2(totalValue - totalInvestment),
		InflationAdjustedTotalValue: utils.Round2(deflate(totalValue, in.InflationPercent, float64(in.Years))),
		Projection:                  projection,
	}, nil
}
