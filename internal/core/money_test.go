package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding, exact despite float repr
		{"0.005", 1, true},
		{"12.344", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{" 2.50 ", 250, true},
		{"150", 15000, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	cases := []struct {
		in  float64
		out int64
	}{
		{150, 15000},
		{250.5, 25050},
		{19.99, 1999}, // 19.99*100 is 1998.999... in float64
		{4.35, 435},   // 4.35*100 is 434.999... in float64
	}
	for _, tc := range cases {
		if got := MoneyFromFloat(tc.in); got.Cents != tc.out {
			t.Fatalf("%v expected %d cents, got %d", tc.in, tc.out, got.Cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if got := (Money{Cents: 15000}).String(); got != "₹150.00" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: -5000}).String(); got != "₹-50.00" {
		t.Fatalf("got %q", got)
	}
}
