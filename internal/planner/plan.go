package planner

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cloud-ru/finplan-go/internal/household"
	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// ErrInvalidPlan означает, что план не удовлетворяет контракту
var ErrInvalidPlan = errors.New("invalid investment plan")

// allocationTolerance - допустимое отклонение суммы долей от 100
const allocationTolerance = 0.5

// Источники плана
const (
	SourceLocal = "local"
	SourceAI    = "ai"
)

// Suggestion - одна рекомендация по категории вложений
type Suggestion struct {
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	SuggestedAmount float64 `json:"suggestedAmount"`
}

// Plan - инвестиционный план: распределение активов в процентах,
// упорядоченные рекомендации и пояснение
type Plan struct {
	ID              string             `json:"id"`
	Source          string             `json:"source"`
	AssetAllocation map[string]float64 `json:"assetAllocation"`
	Suggestions     []Suggestion       `json:"suggestions"`
	Reasoning       string             `json:"reasoning"`
}

// Validate проверяет, что доли неотрицательны и в сумме дают 100
func (p *Plan) Validate() error {
	if len(p.AssetAllocation) == 0 {
		return fmt.Errorf("%w: empty asset allocation", ErrInvalidPlan)
	}

	total := 0.0
	for category, pct := range p.AssetAllocation {
		if pct < 0 || !utils.IsFinite(pct) {
			return fmt.Errorf("%w: allocation for %q is %v", ErrInvalidPlan, category, pct)
		}
		total += pct
	}
	if math.Abs(total-100) > allocationTolerance {
		return fmt.Errorf("%w: allocation sums to %.2f, want 100", ErrInvalidPlan, total)
	}

	for i, s := range p.Suggestions {
		if s.SuggestedAmount < 0 || !utils.IsFinite(s.SuggestedAmount) {
			return fmt.Errorf("%w: suggestions[%d] has amount %v", ErrInvalidPlan, i, s.SuggestedAmount)
		}
	}
	return nil
}

// PlanGenerator строит инвестиционный план по финансовому профилю.
// opts задает, как учитывать уже оформленный SIP в свободном остатке.
type PlanGenerator interface {
	Generate(ctx context.Context, profile *household.Profile, opts household.Options) (*Plan, error)
}
