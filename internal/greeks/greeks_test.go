package greeks

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

// thirtyDayOption builds the reference contract used across the unit
// tests: S=100, K=95, r=5%, T=30 days, sigma=20%, q=1%.
func thirtyDayOption(style models.OptionStyle, side models.Side, qty float64) *models.Option {
	return &models.Option{
		UnderlyingSymbol:  "NIFTY",
		UnderlyingPrice:   dec(100),
		Strike:            dec(95),
		RiskFreeRate:      dec(0.05),
		ExpiryYears:       decimal.NewFromInt(30).Div(decimal.NewFromInt(365)),
		ImpliedVolatility: dec(0.2),
		DividendYield:     dec(0.01),
		Quantity:          dec(qty),
		Style:             style,
		Side:              side,
	}
}

func TestDeltaReference(t *testing.T) {
	tests := []struct {
		name  string
		style models.OptionStyle
		side  models.Side
		qty   float64
		want  float64
	}{
		{"long call", models.Call, models.Long, 1, 0.83942},
		{"long put", models.Put, models.Long, 1, -0.15976},
		{"short call", models.Call, models.Short, 1, -0.83942},
		{"short put", models.Put, models.Short, 1, 0.15976},
		{"long call x3", models.Call, models.Long, 3, 2.51826},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Delta(thirtyDayOption(tt.style, tt.side, tt.qty))
			if err != nil {
				t.Fatalf("Delta returned error: %v", err)
			}
			if !approxEq(got, tt.want, 1e-4) {
				t.Errorf("Delta = %s, want %.5f", got, tt.want)
			}
		})
	}
}

func TestDeltaZeroVolatility(t *testing.T) {
	tests := []struct {
		name   string
		spot   float64
		style  models.OptionStyle
		side   models.Side
		qty    float64
		want   float64
	}{
		{"itm long call", 100, models.Call, models.Long, 1, 1},
		{"itm short call", 100, models.Call, models.Short, 1, -1},
		{"otm long call", 90, models.Call, models.Long, 1, 0},
		{"itm long put", 90, models.Put, models.Long, 1, -1},
		{"itm short put", 90, models.Put, models.Short, 1, 1},
		{"otm long put", 100, models.Put, models.Long, 1, 0},
		{"at the money counts in the money", 95, models.Call, models.Long, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := thirtyDayOption(tt.style, tt.side, tt.qty)
			o.UnderlyingPrice = dec(tt.spot)
			o.ImpliedVolatility = decimal.Zero
			got, err := Delta(o)
			if err != nil {
				t.Fatalf("Delta returned error: %v", err)
			}
			if !approxEq(got, tt.want, 1e-12) {
				t.Errorf("Delta = %s, want %.0f", got, tt.want)
			}
		})
	}
}

func TestGammaReference(t *testing.T) {
	call, err := Gamma(thirtyDayOption(models.Call, models.Long, 1))
	if err != nil {
		t.Fatalf("Gamma returned error: %v", err)
	}
	if !approxEq(call, 0.042380, 1e-4) {
		t.Errorf("Gamma = %s, want 0.042380", call)
	}

	put, err := Gamma(thirtyDayOption(models.Put, models.Long, 1))
	if err != nil {
		t.Fatalf("Gamma returned error: %v", err)
	}
	if !call.Equal(put) {
		t.Errorf("call gamma %s != put gamma %s", call, put)
	}

	short, err := Gamma(thirtyDayOption(models.Call, models.Short, 1))
	if err != nil {
		t.Fatalf("Gamma returned error: %v", err)
	}
	if !short.Equal(call) {
		t.Errorf("short gamma %s, want %s", short, call)
	}
}

func TestGammaZeroVolatility(t *testing.T) {
	o := thirtyDayOption(models.Call, models.Long, 1)
	o.ImpliedVolatility = decimal.Zero
	if _, err := Gamma(o); !errors.Is(err, apperrors.ErrInvalidVolatility) {
		t.Errorf("Gamma error = %v, want %v", err, apperrors.ErrInvalidVolatility)
	}
}

func TestThetaReference(t *testing.T) {
	call, err := Theta(thirtyDayOption(models.Call, models.Long, 1))
	if err != nil {
		t.Fatalf("Theta returned error: %v", err)
	}
	if !approxEq(call, -11.5429, 5e-3) {
		t.Errorf("call Theta = %s, want -11.5429", call)
	}

	put, err := Theta(thirtyDayOption(models.Put, models.Long, 1))
	if err != nil {
		t.Fatalf("Theta returned error: %v", err)
	}
	if !approxEq(put, -7.8116, 5e-3) {
		t.Errorf("put Theta = %s, want -7.8116", put)
	}
}

func TestVegaReference(t *testing.T) {
	call, err := Vega(thirtyDayOption(models.Call, models.Long, 1))
	if err != nil {
		t.Fatalf("Vega returned error: %v", err)
	}
	if !approxEq(call, 6.9668, 1e-3) {
		t.Errorf("Vega = %s, want 6.9668", call)
	}

	put, err := Vega(thirtyDayOption(models.Put, models.Long, 1))
	if err != nil {
		t.Fatalf("Vega returned error: %v", err)
	}
	if !call.Equal(put) {
		t.Errorf("call vega %s != put vega %s", call, put)
	}
}

func TestRhoReference(t *testing.T) {
	call, err := Rho(thirtyDayOption(models.Call, models.Long, 1))
	if err != nil {
		t.Fatalf("Rho returned error: %v", err)
	}
	if !approxEq(call, 6.4213, 5e-3) {
		t.Errorf("call Rho = %s, want 6.4213", call)
	}

	put, err := Rho(thirtyDayOption(models.Put, models.Long, 1))
	if err != nil {
		t.Fatalf("Rho returned error: %v", err)
	}
	if !approxEq(put, -1.3549, 5e-3) {
		t.Errorf("put Rho = %s, want -1.3549", put)
	}
}

func TestRhoDReference(t *testing.T) {
	call, err := RhoD(thirtyDayOption(models.Call, models.Long, 1))
	if err != nil {
		t.Fatalf("RhoD returned error: %v", err)
	}
	if !approxEq(call, -6.9000, 5e-3) {
		t.Errorf("call RhoD = %s, want -6.9000", call)
	}

	put, err := RhoD(thirtyDayOption(models.Put, models.Long, 1))
	if err != nil {
		t.Fatalf("RhoD returned error: %v", err)
	}
	if !approxEq(put, 1.3131, 5e-3) {
		t.Errorf("put RhoD = %s, want 1.3131", put)
	}
}

func TestSideSignsDeltaOnly(t *testing.T) {
	long := thirtyDayOption(models.Call, models.Long, 1)
	short := thirtyDayOption(models.Call, models.Short, 1)

	ld, err := Delta(long)
	if err != nil {
		t.Fatalf("Delta returned error: %v", err)
	}
	sd, err := Delta(short)
	if err != nil {
		t.Fatalf("Delta returned error: %v", err)
	}
	if !sd.Equal(ld.Neg()) {
		t.Errorf("short delta %s, want %s", sd, ld.Neg())
	}

	funcs := map[string]func(*models.Option) (decimal.Decimal, error){
		"Gamma": Gamma,
		"Theta": Theta,
		"Vega":  Vega,
		"Rho":   Rho,
		"RhoD":  RhoD,
	}
	for name, fn := range funcs {
		lv, err := fn(long)
		if err != nil {
			t.Fatalf("%s returned error: %v", name, err)
		}
		sv, err := fn(short)
		if err != nil {
			t.Fatalf("%s returned error: %v", name, err)
		}
		if !sv.Equal(lv) {
			t.Errorf("%s: short %s != long %s", name, sv, lv)
		}
	}
}

func TestGreeksRejectInvalidContract(t *testing.T) {
	o := thirtyDayOption(models.Call, models.Long, 1)
	o.Strike = decimal.Zero

	funcs := map[string]func(*models.Option) (decimal.Decimal, error){
		"Delta": Delta,
		"Gamma": Gamma,
		"Theta": Theta,
		"Vega":  Vega,
		"Rho":   Rho,
		"RhoD":  RhoD,
	}
	for name, fn := range funcs {
		if _, err := fn(o); !errors.Is(err, apperrors.ErrInvalidStrike) {
			t.Errorf("%s error = %v, want %v", name, err, apperrors.ErrInvalidStrike)
		}
	}
}
