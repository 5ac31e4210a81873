package tools

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/finplan-go/internal/calculations"
	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/internal/validators"
)

// CompoundGrowthHandler обрабатывает запрос на расчет сложного процента
func CompoundGrowthHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolCompoundGrowth)
		defer call.end()

		var in calculations.CompoundInput
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("principal", in.Principal),
			attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
			attribute.Float64("years", in.Years),
		)

		if err := firstError(
			validators.CheckPrincipal(cfg, in.Principal),
			validators.CheckRate(cfg, in.AnnualRatePercent),
			validators.CheckYears(cfg, in.Years),
			validators.CheckInflation(cfg, in.InflationPercent),
			validators.ValidateIntRange("compounding_per_year", in.CompoundingPerYear, 0, 365),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.CompoundGrowth(in)
		if err != nil {
			return nil, call.failed(err)
		}
		if err := validators.CheckBalance(cfg, result.FutureValue); err != nil {
			return nil, call.invalid(err)
		}

		call.succeeded(attribute.Float64("future_value", result.FutureValue))
		return result, nil
	}
}

// SIPHandler обрабатывает запрос на расчет регулярных ежемесячных взносов
func SIPHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolSIP)
		defer call.end()

		var in calculations.SIPInput
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("monthly_contribution", in.MonthlyContribution),
			attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
			attribute.Float64("years", in.Years),
		)

		if err := firstError(
			validators.CheckContribution(cfg, in.MonthlyContribution),
			validators.CheckRate(cfg, in.AnnualRatePercent),
			validators.CheckYears(cfg, in.Years),
			validators.CheckInflation(cfg, in.InflationPercent),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.SIP(in)
		if err != nil {
			return nil, call.failed(err)
		}
		if err := validators.CheckBalance(cfg, result.FutureValue); err != nil {
			return nil, call.invalid(err)
		}

		call.succeeded(
			attribute.Float64("future_value", result.FutureValue),
			attribute.Float64("invested_amount", result.InvestedAmount),
		)
		return result, nil
	}
}

// LumpsumHandler обрабатывает запрос на расчет единовременного вложения с реинвестированием
func LumpsumHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolLumpsum)
		defer call.end()

		var in calculations.LumpsumInput
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("initial_amount", in.InitialAmount),
			attribute.Float64("recurring_amount", in.RecurringAmount),
			attribute.String("frequency", string(in.Frequency)),
			attribute.Int("years", in.Years),
		)

		if err := firstError(
			validators.CheckInitialAmount(cfg, in.InitialAmount),
			validators.CheckContribution(cfg, in.RecurringAmount),
			validators.CheckRate(cfg, in.AnnualRatePercent),
			validators.CheckHorizon(cfg, in.Years),
			validators.CheckInflation(cfg, in.InflationPercent),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.LumpsumRecurring(in)
		if err != nil {
			return nil, call.failed(err)
		}
		if err := validators.CheckBalance(cfg, result.TotalValue); err != nil {
			return nil, call.invalid(err)
		}

		call.succeeded(attribute.Float64("total_value", result.TotalValue))
		return result, nil
	}
}

// GoalProjectionHandler обрабатывает запрос на проекцию набора нерегулярных вложений
func GoalProjectionHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolGoalProjection)
		defer call.end()

		var in calculations.GoalInput
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Int("entries", len(in.Entries)),
			attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
			attribute.Int("total_years", in.TotalYears),
			attribute.Bool("adjust_for_inflation", in.AdjustForInflation),
		)

		if err := firstError(
			validators.CheckEntries(cfg, in.Entries),
			validators.CheckRate(cfg, in.AnnualRatePercent),
			validators.CheckHorizon(cfg, in.TotalYears),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.ProjectGoal(in)
		if err != nil {
			return nil, call.failed(err)
		}
		if err := validators.CheckBalance(cfg, result.FinalValue); err != nil {
			return nil, call.invalid(err)
		}

		call.succeeded(attribute.Float64("final_value", result.FinalValue))
		return result, nil
	}
}

// EMIHandler обрабатывает запрос на расчет кредита
func EMIHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolEMI)
		defer call.end()

		var in calculations.LoanInput
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Float64("principal", in.Principal),
			attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
			attribute.Float64("tenure_years", in.TenureYears),
			attribute.String("interest_model", string(in.Model)),
		)

		if err := firstError(
			validators.CheckPrincipal(cfg, in.Principal),
			validators.CheckRate(cfg, in.AnnualRatePercent),
			validators.CheckYears(cfg, in.TenureYears),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.EMI(in)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.Float64("monthly_emi", result.Summary.MonthlyEMI),
			attribute.Float64("total_payment", result.Summary.TotalPayment),
		)
		return result, nil
	}
}

// CompareInterestModelsHandler обрабатывает запрос на сравнение моделей начисления процентов
func CompareInterestModelsHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, ToolCompareInterestModels)
		defer call.end()

		var in calculations.LoanInput
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		if err := firstError(
			validators.CheckPrincipal(cfg, in.Principal),
			validators.CheckRate(cfg, in.AnnualRatePercent),
			validators.CheckYears(cfg, in.TenureYears),
		); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.CompareInterestModels(in.Principal, in.AnnualRatePercent, in.TenureYears)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(attribute.String("cheaper_model", string(result.CheaperModel)))
		return result, nil
	}
}
