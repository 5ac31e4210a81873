package validators

import (
	"math"
	"testing"

	"github.com/cloud-ru/finplan-go/internal/calculations"
	"github.com/cloud-ru/finplan-go/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxPrincipal:    1e10,
		MaxContribution: 1e8,
		MaxYears:        100,
		MaxRate:         100,
		MaxBalanceCap:   1e13,
		MaxEntries:      3,
		PlanProvider:    config.PlanProviderLocal,
	}
}

func TestValidators(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     1000000.0,
			wantError: false,
		},
		{
			name:      "invalid principal zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     0.0,
			wantError: true,
		},
		{
			name:      "invalid principal negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     -1000.0,
			wantError: true,
		},
		{
			name:      "invalid principal infinite",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     math.Inf(1),
			wantError: true,
		},
		{
			name:      "valid rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     12.0,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "invalid inflation too large",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInflation(cfg, v.(float64)) },
			value:     250.0,
			wantError: true,
		},
		{
			name:      "valid fractional years",
			validator: func(cfg *config.Config, v interface{}) error { return CheckYears(cfg, v.(float64)) },
			value:     2.5,
			wantError: false,
		},
		{
			name:      "invalid years zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckYears(cfg, v.(float64)) },
			value:     0.0,
			wantError: true,
		},
		{
			name:      "invalid horizon too long",
			validator: func(cfg *config.Config, v interface{}) error { return CheckHorizon(cfg, v.(int)) },
			value:     101,
			wantError: true,
		},
		{
			name:      "valid initial amount",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInitialAmount(cfg, v.(float64)) },
			value:     100000.0,
			wantError: false,
		},
		{
			name:      "valid contribution",
			validator: func(cfg *config.Config, v interface{}) error { return CheckContribution(cfg, v.(float64)) },
			value:     10000.0,
			wantError: false,
		},
		{
			name:      "balance over cap",
			validator: func(cfg *config.Config, v interface{}) error { return CheckBalance(cfg, v.(float64)) },
			value:     2e13,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCheckEntries(t *testing.T) {
	cfg := testConfig()

	ok := []calculations.InvestmentEntry{
		{Amount: 1000, StartYear: 0, InflationPercent: 6},
		{Amount: 500, StartYear: 4},
	}
	if err := CheckEntries(cfg, ok); err != nil {
		t.Errorf("CheckEntries() unexpected error = %v", err)
	}

	tooMany := make([]calculations.InvestmentEntry, 4)
	if err := CheckEntries(cfg, tooMany); err == nil {
		t.Error("expected error for too many entries")
	}

	badYear := []calculations.InvestmentEntry{{Amount: 10, StartYear: -2}}
	if err := CheckEntries(cfg, badYear); err == nil {
		t.Error("expected error for negative start year")
	}
}

func TestBalanceCapDefault(t *testing.T) {
	if got := BalanceCap(nil); got != 1e13 {
		t.Errorf("BalanceCap(nil) = %v, want 1e13", got)
	}
}
