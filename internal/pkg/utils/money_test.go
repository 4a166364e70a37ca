package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{6000, "USD", "$60.00"},
		{126000, "usd", "$1,260.00"},
		{1260, "USD", "$12.60"},
		{-2500, "USD", "-$25.00"},
		{99, "XYZ", "0.99 XYZ"},
		{220000000, "USD", "$2,200,000.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%d, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
