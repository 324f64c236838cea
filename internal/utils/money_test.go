package utils

import "testing"

func TestFormatINRGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Rs. 0"},
		{999, "Rs. 999"},
		{1000, "Rs. 1,000"},
		{12500, "Rs. 12,500"},
		{125000, "Rs. 1,25,000"},
		{4500000, "Rs. 45,00,000"},
		{-12500, "-Rs. 12,500"},
		{4999.6, "Rs. 5,000"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1234.5); got != "1234.50" {
		t.Errorf("FormatMoney(1234.5) = %q", got)
	}
}
