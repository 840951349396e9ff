package services

import "testing"

func TestComposeSKU(t *testing.T) {
	tests := []struct {
		name          string
		supplierCode  string
		productNumber string
		colorName     string
		want          string
	}{
		{"variant", "SUP001", "ABC", "Red", "ABC-SUP001-RED"},
		{"no color", "SUP001", "ABC", "", "ABC-SUP001"},
		{"sanitized inputs", "SUP 001", "A.B", "dark green", "A-B-SUP-001-DARK-GREEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeSKU(tt.supplierCode, tt.productNumber, tt.colorName)
			if got != tt.want {
				t.Fatalf("ComposeSKU() = %q, want %q", got, tt.want)
			}
		})
	}
}
