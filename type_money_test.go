package waterfall

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m    Money
		want string
	}{
		{USD(1234.567), "$1,234.57"},
		{USD(100_000_000), "$100,000,000.00"},
		{M(12.5, ""), "12.50"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
	if got := USD(3).SignedString(); got != "+$3.00" {
		t.Errorf("SignedString() = %q, want %q", got, "+$3.00")
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	got := M(10, "").Add(USD(5))
	if !got.Equal(USD(15)) {
		t.Errorf("Add() = %v (%q), want %v", got, got.Currency(), USD(15))
	}
	if got := M(10, "").In("EUR"); got.Currency() != "EUR" {
		t.Errorf("In() currency = %q, want EUR", got.Currency())
	}
	if got := USD(10).In("EUR"); got.Currency() != "USD" {
		t.Errorf("In() changed an existing currency to %q", got.Currency())
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(USD(1234.567))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"currency":"USD","amount":"1234.57"}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var m Money
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !m.Equal(USD(1234.57)) {
		t.Errorf("Unmarshal() = %v, want %v", m, USD(1234.57))
	}

	if err := json.Unmarshal([]byte(`2500000`), &m); err != nil {
		t.Fatalf("Unmarshal() bare number failed: %v", err)
	}
	if !m.Equal(M(2_500_000, "")) {
		t.Errorf("Unmarshal() = %v, want 2500000", m)
	}
}

func TestRatio_Format(t *testing.T) {
	if got := R(1.5).Multiple(); got != "1.5x" {
		t.Errorf("Multiple() = %q, want %q", got, "1.5x")
	}
	if got := R(0.0008).Percent(3); got != "0.080%" {
		t.Errorf("Percent() = %q, want %q", got, "0.080%")
	}
	if got := Percent(20); !got.Equal(R(0.2)) {
		t.Errorf("Percent(20) = %v, want 0.2", got)
	}
}

func TestQuantity_Grouped(t *testing.T) {
	testCases := []struct {
		q    Quantity
		want string
	}{
		{Q(10_000), "10,000"},
		{Q(12_500_000), "12,500,000"},
		{Q(999), "999"},
		{Q(2.5), "2.5"},
	}
	for _, tc := range testCases {
		if got := tc.q.Grouped(); got != tc.want {
			t.Errorf("Grouped() = %q, want %q", got, tc.want)
		}
	}
}
