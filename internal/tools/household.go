package tools

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/internal/household"
	"github.com/cloud-ru/finplan-go/internal/planner"
	"github.com/cloud-ru/finplan-go/internal/validators"
)

type profileParams struct {
	Profile household.Profile `json:"profile"`
	household.Options
}

func checkProfile(cfg *config.Config, p *household.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return firstError(
		validators.ValidatePositiveNumber("monthly_income", p.MonthlyIncome, 0, cfg.MaxPrincipal),
		validators.ValidatePositiveNumber("annual_income", p.AnnualIncome, 0, cfg.MaxPrincipal),
		validators.ValidatePositiveNumber("emergency_fund", p.EmergencyFund, 0, cfg.MaxPrincipal),
		validators.CheckContribution(cfg, p.MonthlySIP),
	)
}

// HouseholdCashflowHandler обрабатывает запрос на расчет месячного денежного потока
func HouseholdCashflowHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolHouseholdCashflow)
		defer call.end()

		var in profileParams
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Int("loans", len(in.Profile.Loans)),
			attribute.Bool("include_sip_in_cashflow", in.IncludeSIPInCashflow),
		)

		if err := checkProfile(cfg, &in.Profile); err != nil {
			return nil, call.invalid(err)
		}

		summary, err := household.Summarize(&in.Profile, in.Options)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.Float64("net_monthly_cashflow", summary.NetMonthlyCashflow),
			attribute.Bool("needs_adjustment", summary.NeedsAdjustment),
		)
		return summary, nil
	}
}

// InvestmentPlanHandler обрабатывает запрос на инвестиционный план
func InvestmentPlanHandler(cfg *config.Config, tracer trace.Tracer, gen planner.PlanGenerator) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, call := start(ctx, tracer, ToolInvestmentPlan)
		defer call.end()

		var in profileParams
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		if err := checkProfile(cfg, &in.Profile); err != nil {
			return nil, call.invalid(err)
		}

		plan, err := gen.Generate(ctx, &in.Profile, in.Options)
		if err != nil {
			if errors.Is(err, household.ErrInvalidProfile) {
				return nil, call.invalid(err)
			}
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.String("plan_source", plan.Source),
			attribute.Int("suggestions", len(plan.Suggestions)),
		)
		return plan, nil
	}
}
