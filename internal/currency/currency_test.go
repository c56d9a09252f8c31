package currency

import "testing"

func TestCNYToUSD(t *testing.T) {
	tests := []struct {
		name string
		cny  float64
		rate float64
		want float64
	}{
		{name: "flat weidian freight", cny: 10, rate: RateCNYToUSD, want: 1.4},
		{name: "flat 1688 freight", cny: 6, rate: RateCNYToUSD, want: 0.84},
		{name: "rounding up", cny: 10.7, rate: RateCNYToUSD, want: 1.5}, // 1.498 -> 1.5
		{name: "zero", cny: 0, rate: RateCNYToUSD, want: 0},
		{name: "negative clamps to zero", cny: -3, rate: RateCNYToUSD, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CNYToUSD(tt.cny, tt.rate); got != tt.want {
				t.Errorf("CNYToUSD(%v) = %v, want %v", tt.cny, got, tt.want)
			}
		})
	}
}

func TestCNYDivUSD(t *testing.T) {
	tests := []struct {
		name    string
		cny     float64
		divisor float64
		want    float64
	}{
		{name: "taobao divisor", cny: 66.5, divisor: DivisorTaobaoUSD, want: 10},
		{name: "response divisor", cny: 67, divisor: DivisorResponseUSD, want: 10},
		{name: "two decimals", cny: 100, divisor: DivisorResponseUSD, want: 14.93},
		{name: "zero divisor", cny: 10, divisor: 0, want: 0},
		{name: "negative amount", cny: -1, divisor: DivisorResponseUSD, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CNYDivUSD(tt.cny, tt.divisor); got != tt.want {
				t.Errorf("CNYDivUSD(%v, %v) = %v, want %v", tt.cny, tt.divisor, got, tt.want)
			}
		})
	}
}
