package calculations

import (
	"math"

	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// CompoundGrowth рассчитывает будущую стоимость единовременного вложения
// при сложном проценте с заданной частотой капитализации
func CompoundGrowth(in CompoundInput) (*GrowthSummary, error) {
	if !(in.Principal > 0) || !utils.IsFinite(in.Principal) {
		return nil, insufficient("principal")
	}
	if !(in.AnnualRatePercent > 0) || !utils.IsFinite(in.AnnualRatePercent) {
		return nil, insufficient("annual_rate_percent")
	}
	if !(in.Years > 0) || !utils.IsFinite(in.Years) {
		return nil, insufficient("years")
	}
	if in.InflationPercent < 0 || !utils.IsFinite(in.InflationPercent) {
		return nil, insufficient("inflation_percent")
	}

	nc := in.CompoundingPerYear
	if nc <= 0 {
		nc = 1
	}

	r := utils.ToFraction(in.AnnualRatePercent)
	fv := in.Principal * math.Pow(1.0+r/float64(nc), float64(nc)*in.Years)

	return &GrowthSummary{
		FutureValue:            utils.Round2(fv),
		InvestedAmount:         utils.Round2(in.Principal),
		EstimatedReturns:       utils.Round2(fv - in.Principal),
		InflationAdjustedValue: utils.Round2(deflate(fv, in.InflationPercent, in.Years)),
	}, nil
}

// SIP рассчитывает будущую стоимость ежемесячных взносов в начале периода
func SIP(in SIPInput) (*SIPResult, error) {
	if !(in.MonthlyContribution > 0) || !utils.IsFinite(in.MonthlyContribution) {
		return nil, insufficient("monthly_contribution")
	}
	if in.AnnualRatePercent < 0 || !utils.IsFinite(in.AnnualRatePercent) {
		return nil, insufficient("annual_rate_percent")
	}
	if !(in.Years > 0) || !utils.IsFinite(in.Years) {
		return nil, insufficient("years")
	}
	if in.InflationPercent < 0 || !utils.IsFinite(in.InflationPercent) {
		return nil, insufficient("inflation_percent")
	}

	i := utils.ToFraction(in.AnnualRatePercent) / 12.0
	m := int(math.Round(in.Years * 12))
	if m < 1 {
		return nil, insufficient("years")
	}

	fv := annuityDue(in.MonthlyContribution, i, m)
	invested := in.MonthlyContribution * float64(m)

	// Инфляция дисконтируется по годам, хотя рост считается помесячно
	return &SIPResult{
		GrowthSummary: GrowthSummary{
			FutureValue:            utils.Round2(fv),
			InvestedAmount:         utils.Round2(invested),
			EstimatedReturns:       utils.Round2(fv - invested),
			InflationAdjustedValue: utils.Round2(deflate(fv, in.InflationPercent, in.Years)),
		},
		MonthlyRate: i,
		Months:      m,
	}, nil
}

// annuityDue возвращает будущую стоимость потока взносов в начале каждого периода.
// При нулевой или пренебрежимо малой ставке используется линейный предел: взнос * число периодов.
func annuityDue(payment, periodicRate float64, periods int) float64 {
	if periods <= 0 || payment == 0 {
		return 0
	}
	gain := growthMinusOne(periodicRate, periods)
	if periodicRate == 0 || gain == 0 {
		return payment * float64(periods)
	}
	return payment * gain / periodicRate * (1.0 + periodicRate)
}

// growthMinusOne возвращает (1+rate)^periods - 1 без потери точности при малых ставках
func growthMinusOne(rate float64, periods int) float64 {
	return math.Expm1(float64(periods) * math.Log1p(rate))
}

// deflate приводит номинальную сумму к сегодняшним деньгам
func deflate(value, inflationPercent, years float64) float64 {
	return value / math.Pow(1.0+utils.ToFraction(inflationPercent), years)
}
