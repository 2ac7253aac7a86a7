package strategy

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

func TestBookOptionsEmpty(t *testing.T) {
	b := NewBook("empty", "XYZ", dec(100))
	if _, err := b.Options(); !errors.Is(err, apperrors.ErrNoPositions) {
		t.Errorf("Options error = %v, want %v", err, apperrors.ErrNoPositions)
	}
}

func TestBookOptionsOrder(t *testing.T) {
	b := strangleFixture()
	opts, err := b.Options()
	if err != nil {
		t.Fatalf("Options returned error: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}
	if opts[0].Style != models.Call || opts[1].Style != models.Put {
		t.Errorf("legs out of order: %s then %s", opts[0].Style, opts[1].Style)
	}
}

func TestBookGet(t *testing.T) {
	b := strangleFixture()

	p, err := b.Get(dec(7250), models.Put, models.Short)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if p.Option.Style != models.Put {
		t.Errorf("got %s leg, want PUT", p.Option.Style)
	}

	// strike values compare by numeric equality regardless of scale
	p2, err := b.Get(decimal.RequireFromString("7250.00"), models.Put, models.Short)
	if err != nil {
		t.Fatalf("Get with rescaled strike returned error: %v", err)
	}
	if p2 != p {
		t.Error("rescaled strike matched a different position")
	}

	tests := []struct {
		name   string
		strike decimal.Decimal
		style  models.OptionStyle
		side   models.Side
	}{
		{"wrong strike", dec(7300), models.Put, models.Short},
		{"wrong style", dec(7250), models.Call, models.Short},
		{"wrong side", dec(7250), models.Put, models.Long},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Get(tt.strike, tt.style, tt.side); !errors.Is(err, apperrors.ErrPositionNotFound) {
				t.Errorf("Get error = %v, want %v", err, apperrors.ErrPositionNotFound)
			}
		})
	}
}

func TestBookATMStrike(t *testing.T) {
	b := strangleFixture()
	// spot 7138.5: the 7250 put is closer than the 7450 call
	if got := b.ATMStrike(); !got.Equal(dec(7250)) {
		t.Errorf("ATMStrike = %s, want 7250", got)
	}

	empty := NewBook("empty", "XYZ", dec(100))
	if got := empty.ATMStrike(); !got.IsZero() {
		t.Errorf("ATMStrike on empty book = %s, want 0", got)
	}
}

func TestBookModify(t *testing.T) {
	book := strangleFixture()

	if err := book.Modify(dec(0.5), dec(7450), models.Call, models.Short); err != nil {
		t.Fatalf("Modify returned error: %v", err)
	}
	if !book.Positions[0].Option.Quantity.Equal(dec(2.5)) {
		t.Errorf("quantity = %s, want 2.5", book.Positions[0].Option.Quantity)
	}

	if err := book.Modify(dec(-3), dec(7250), models.Put, models.Short); !errors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("negative result error = %v, want ErrInputValidation", err)
	}
	if !book.Positions[1].Option.Quantity.Equal(dec(2)) {
		t.Error("book mutated on rejected modify")
	}

	if err := book.Modify(dec(1), dec(1), models.Call, models.Long); !errors.Is(err, apperrors.ErrPositionNotFound) {
		t.Errorf("missing leg error = %v, want ErrPositionNotFound", err)
	}
}
