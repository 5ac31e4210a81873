package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/finplan-go/internal/calculations"
	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/internal/metrics"
	"github.com/cloud-ru/finplan-go/internal/planner"
)

// ErrInvalidParams означает, что параметры не прошли декодирование или проверку
var ErrInvalidParams = errors.New("invalid parameters")

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Имена инструментов
const (
	ToolCompoundGrowth        = "compound_growth"
	ToolSIP                   = "sip_calculator"
	ToolLumpsum               = "lumpsum_calculator"
	ToolGoalProjection        = "goal_projection"
	ToolEMI                   = "emi_calculator"
	ToolCompareInterestModels = "compare_interest_models"
	ToolHouseholdCashflow     = "household_cashflow"
	ToolInvestmentPlan        = "investment_plan"
)

// Registry возвращает все инструменты по именам
func Registry(cfg *config.Config, tracer trace.Tracer, gen planner.PlanGenerator) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolCompoundGrowth:        CompoundGrowthHandler(cfg, tracer),
		ToolSIP:                   SIPHandler(cfg, tracer),
		ToolLumpsum:               LumpsumHandler(cfg, tracer),
		ToolGoalProjection:        GoalProjectionHandler(cfg, tracer),
		ToolEMI:                   EMIHandler(cfg, tracer),
		ToolCompareInterestModels: CompareInterestModelsHandler(cfg, tracer),
		ToolHouseholdCashflow:     HouseholdCashflowHandler(cfg, tracer),
		ToolInvestmentPlan:        InvestmentPlanHandler(cfg, tracer, gen),
	}
}

// Names возвращает отсортированные имена инструментов реестра
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeParams перекладывает произвольные параметры в типизированную структуру
func decodeParams(params map[string]interface{}, dst interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// invocation сопровождает один вызов инструмента: спан и счетчики
type invocation struct {
	tool string
	span trace.Span
}

func start(ctx context.Context, tracer trace.Tracer, tool string) (context.Context, *invocation) {
	ctx, span := tracer.Start(ctx, tool)
	metrics.APICalls.WithLabelValues("http", tool, "started").Inc()
	return ctx, &invocation{tool: tool, span: span}
}

func (c *invocation) end() {
	c.span.End()
}

// invalid фиксирует ошибку проверки параметров
func (c *invocation) invalid(err error) error {
	c.span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(c.tool, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.tool, "validation").Inc()
	metrics.APICalls.WithLabelValues("http", c.tool, "error").Inc()
	if errors.Is(err, ErrInvalidParams) {
		return fmt.Errorf("неверные параметры: %w", err)
	}
	return fmt.Errorf("неверные параметры: %w: %v", ErrInvalidParams, err)
}

// failed фиксирует ошибку расчета; недостаток входных данных учитывается отдельно
func (c *invocation) failed(err error) error {
	errorType := "calculation"
	if errors.Is(err, calculations.ErrInsufficientInput) {
		errorType = "insufficient_input"
	}
	c.span.SetAttributes(attribute.String("error", errorType))
	metrics.ToolCalls.WithLabelValues(c.tool, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.tool, errorType).Inc()
	metrics.APICalls.WithLabelValues("http", c.tool, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *invocation) succeeded(attrs ...attribute.KeyValue) {
	c.span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(c.tool, "success").Inc()
	metrics.APICalls.WithLabelValues("http", c.tool, "success").Inc()
}

// firstError возвращает первую ненулевую ошибку проверки
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
