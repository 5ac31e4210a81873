package validators

import (
	"fmt"

	"github.com/cloud-ru/finplan-go/internal/calculations"
	"github.com/cloud-ru/finplan-go/internal/config"
	"github.com/cloud-ru/finplan-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число положительное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита или вложения
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 1e-9, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckInflation проверяет ставку инфляции
func CheckInflation(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("inflation_percent", rate, 0.0, cfg.MaxRate)
}

// CheckYears проверяет срок в годах (допускаются дробные значения)
func CheckYears(cfg *config.Config, years float64) error {
	return ValidatePositiveNumber("years", years, 1.0/12.0, float64(cfg.MaxYears))
}

// CheckHorizon проверяет горизонт проекции в целых годах
func CheckHorizon(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, 0, cfg.MaxYears)
}

// CheckInitialAmount проверяет начальную сумму
func CheckInitialAmount(cfg *config.Config, amount float64) error {
	return ValidatePositiveNumber("initial_amount", amount, 0.0, cfg.MaxPrincipal)
}

// CheckContribution проверяет регулярный взнос
func CheckContribution(cfg *config.Config, contribution float64) error {
	return ValidatePositiveNumber("contribution", contribution, 0.0, cfg.MaxContribution)
}

// CheckEntries проверяет список нерегулярных вложений
func CheckEntries(cfg *config.Config, entries []calculations.InvestmentEntry) error {
	if len(entries) > cfg.MaxEntries {
		return fmt.Errorf("entries: слишком много вложений (>%d)", cfg.MaxEntries)
	}
	for i, e := range entries {
		if err := ValidatePositiveNumber(fmt.Sprintf("entries[%d].amount", i), e.Amount, 0.0, cfg.MaxPrincipal); err != nil {
			return err
		}
		if err := ValidateIntRange(fmt.Sprintf("entries[%d].start_year", i), e.StartYear, 0, cfg.MaxYears); err != nil {
			return err
		}
		if err := CheckInflation(cfg, e.InflationPercent); err != nil {
			return fmt.Errorf("entries[%d]: %w", i, err)
		}
	}
	return nil
}

// CheckBalance проверяет, что итоговая сумма не превысила верхнюю границу
func CheckBalance(cfg *config.Config, value float64) error {
	if !utils.IsFinite(value) || value > BalanceCap(cfg) {
		return fmt.Errorf("итоговый баланс превысил верхнюю границу (проверьте ставку/срок/взносы)")
	}
	return nil
}

// BalanceCap возвращает максимальный баланс
func BalanceCap(cfg *config.Config) float64 {
	if cfg == nil {
		return 1e13 // Значение по умолчанию
	}
	return cfg.BalanceCap()
}
