package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// ProjectGoal строит проекцию по годам 0..TotalYears для набора нерегулярных
// вложений. Каждое вложение растет с собственного года старта и дисконтируется
// собственной инфляцией; показатель степени - годы с момента старта вложения.
func ProjectGoal(in GoalInput) (*GoalResult, error) {
	if len(in.Entries) == 0 {
		return nil, insufficient("entries")
	}
	if in.AnnualRatePercent < 0 || !utils.IsFinite(in.AnnualRatePercent) {
		return nil, insufficient("annual_rate_percent")
	}
	if in.TotalYears < 0 {
		return nil, insufficient("total_years")
	}
	for idx, e := range in.Entries {
		if e.Amount < 0 || !utils.IsFinite(e.Amount) {
			return nil, insufficient(fmt.Sprintf("entries[%d].amount", idx))
		}
		if e.StartYear < 0 {
			return nil, insufficient(fmt.Sprintf("entries[%d].start_year", idx))
		}
		if e.InflationPercent < 0 || !utils.IsFinite(e.InflationPercent) {
			return nil, insufficient(fmt.Sprintf("entries[%d].inflation_percent", idx))
		}
	}

	growth := 1.0 + utils.ToFraction(in.AnnualRatePercent)
	projection := make([]ProjectionPoint, 0, in.TotalYears+1)

	var nominal, discounted, invested float64
	for year := 0; year <= in.TotalYears; year++ {
		nominal, discounted, invested = 0.0, 0.0, 0.0

		for _, e := range in.Entries {
			if e.StartYear > year {
				continue
			}
			elapsed := float64(year - e.StartYear)
			value := e.Amount * math.Pow(growth, elapsed)

			nominal += value
			discounted += value / math.Pow(1.0+utils.ToFraction(e.InflationPercent), elapsed)
			invested += e.Amount
		}

		projected := nominal
		if in.AdjustForInflation {
			projected = discounted
		}

		projection = append(projection, ProjectionPoint{
			Year:                   year,
			ProjectedValue:         utils.Round2(projected),
			InvestedSoFar:          utils.Round2(invested),
			InflationAdjustedValue: utils.Round2(discounted),
		})
	}

	last := projection[len(projection)-1]

	return &GoalResult{
		StartYear:              0,
		FinalValue:             last.ProjectedValue,
		FinalInvested:          last.InvestedSoFar,
		InflationAdjustedValue: last.InflationAdjustedValue,
		Projection:             projection,
	}, nil
}
