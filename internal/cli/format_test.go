package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/models"
)

func flagCmd(name, value string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String(name, "", "")
	cmd.Flags().Set(name, value)
	return cmd
}

func TestDecimalFlag(t *testing.T) {
	d, err := decimalFlag(flagCmd("spot", "7138.50"), "spot")
	if err != nil {
		t.Fatalf("decimalFlag returned error: %v", err)
	}
	if d.String() != "7138.5" {
		t.Errorf("got %s, want 7138.5", d)
	}

	d, err = decimalFlag(flagCmd("spot", ""), "spot")
	if err != nil {
		t.Fatalf("decimalFlag on empty returned error: %v", err)
	}
	if !d.IsZero() {
		t.Errorf("empty flag = %s, want 0", d)
	}

	_, err = decimalFlag(flagCmd("spot", "abc"), "spot")
	if !errors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("bad input error = %v, want ErrInputValidation", err)
	}
}

func TestExpiryYearsFlag(t *testing.T) {
	d, err := expiryYearsFlag(flagCmd("days", "365"), "days")
	if err != nil {
		t.Fatalf("expiryYearsFlag returned error: %v", err)
	}
	if d.String() != "1" {
		t.Errorf("365 days = %s years, want 1", d)
	}
}

func TestStyleFlag(t *testing.T) {
	cases := map[string]models.OptionStyle{
		"call": models.Call,
		"put":  models.Put,
		"CALL": models.Call,
	}
	for in, want := range cases {
		got, err := styleFlag(flagCmd("style", in))
		if err != nil {
			t.Fatalf("styleFlag(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Errorf("styleFlag(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := styleFlag(flagCmd("style", "swaption")); !errors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("bad style error = %v, want ErrInputValidation", err)
	}
}

func TestSideFlag(t *testing.T) {
	got, err := sideFlag(flagCmd("side", "short"))
	if err != nil {
		t.Fatalf("sideFlag returned error: %v", err)
	}
	if got != models.Short {
		t.Errorf("sideFlag(short) = %v, want Short", got)
	}

	if _, err := sideFlag(flagCmd("side", "flat")); !errors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("bad side error = %v, want ErrInputValidation", err)
	}
}
