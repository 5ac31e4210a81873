package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloud-ru/finplan-go/internal/household"
	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// CategoryMutualFunds - единственная категория локального плана
const CategoryMutualFunds = "Mutual Funds"

// LocalGenerator строит план детерминированно, без внешних вызовов:
// весь положительный месячный остаток направляется в паевые фонды
type LocalGenerator struct{}

// NewLocalGenerator создает локальный генератор
func NewLocalGenerator() *LocalGenerator {
	return &LocalGenerator{}
}

// Generate реализует PlanGenerator
func (g *LocalGenerator) Generate(ctx context.Context, profile *household.Profile, opts household.Options) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary, err := household.Summarize(profile, opts)
	if err != nil {
		return nil, err
	}

	amount := 0.0
	var reasoning string
	if summary.NeedsAdjustment {
		reasoning = fmt.Sprintf(
			"Net monthly cashflow is %s, so there is nothing left to invest. %s",
			utils.FormatINR(summary.NetMonthlyCashflow), summary.Advice)
	} else {
		amount = summary.NetMonthlyCashflow
		reasoning = fmt.Sprintf(
			"After expenses of %s, EMIs of %s and insurance of %s, %s remains every month. "+
				"Investing the full surplus through a mutual fund SIP keeps the plan simple.",
			utils.FormatINR(summary.TotalMonthlyExpenses),
			utils.FormatINR(summary.TotalMonthlyEMI),
			utils.FormatINR(summary.TotalMonthlyInsurance),
			utils.FormatINR(summary.NetMonthlyCashflow))
		reasoning += fmt.Sprintf(" Expenses take %s of income and EMIs %s.",
			utils.FormatPercent(summary.Ratios.ExpensePct),
			utils.FormatPercent(summary.Ratios.EMIPct))
	}

	if summary.EmergencyFund.Status == household.EmergencyLow {
		reasoning += fmt.Sprintf(" The emergency fund is below six months of income (%s); consider topping it up first.",
			utils.FormatINR(summary.EmergencyFund.MinTarget))
	}

	plan := &Plan{
		ID:              uuid.NewString(),
		Source:          SourceLocal,
		AssetAllocation: map[string]float64{CategoryMutualFunds: 100},
		Suggestions: []Suggestion{{
			Category:        CategoryMutualFunds,
			Description:     "Monthly SIP into a diversified mutual fund",
			SuggestedAmount: utils.Round2(amount),
		}},
		Reasoning: reasoning,
	}

	return plan, nil
}
