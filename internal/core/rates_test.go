package core

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	rates := RateTable{"KZT": 1, "RUB": 0.2}

	cases := []struct {
		amount   float64
		currency string
		want     float64
	}{
		{100, "RUB", 20},
		{100, "KZT", 100},
		{100, "USD", 100}, // unknown code falls back to 1:1
		{0, "RUB", 0},
	}
	for i, tc := range cases {
		if got := Convert(tc.amount, rates, tc.currency); got != tc.want {
			t.Fatalf("case %d: Convert(%v, %s) = %v, want %v", i, tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	rates := DefaultRates()
	for code := range rates {
		base, err := ToBase(123.45, rates, code)
		if err != nil {
			t.Fatalf("%s: ToBase: %v", code, err)
		}
		back := Convert(base, rates, code)
		if math.Abs(back-123.45) > 1e-9 {
			t.Fatalf("%s: round trip 123.45 -> %v", code, back)
		}
	}
}

func TestToBaseZeroRate(t *testing.T) {
	rates := RateTable{"BAD": 0}
	if _, err := ToBase(100, rates, "BAD"); err != ErrZeroRate {
		t.Fatalf("expected ErrZeroRate, got %v", err)
	}
}

func TestDefaultRatesBaseIsOne(t *testing.T) {
	if DefaultRates()[BaseCurrency] != 1 {
		t.Fatalf("base currency must map to 1")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		amount float64
		code   string
		want   string
	}{
		{20, "RUB", "20.00 RUB"},
		{1234.5, "KZT", "1234.50 KZT"},
		{-150, "KZT", "-150.00 KZT"},
		{0.005, "JPY", "0.01 JPY"},
	}
	for i, tc := range cases {
		if got := FormatAmount(tc.amount, tc.code); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}
