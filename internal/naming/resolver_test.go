package naming

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		scope         Scope
		supplierCode  string
		productNumber string
		colorName     string
		order         int
		want          string
	}{
		{
			name:          "variant picture",
			scope:         ScopeVariant,
			supplierCode:  "SUP001",
			productNumber: "ABC",
			colorName:     "Red",
			order:         1,
			want:          "ABC_SUP001_red_1",
		},
		{
			name:          "product picture ignores color",
			scope:         ScopeProduct,
			supplierCode:  "SUP001",
			productNumber: "ABC",
			colorName:     "Red",
			order:         2,
			want:          "ABC_SUP001_2",
		},
		{
			name:          "two digit order",
			scope:         ScopeVariant,
			supplierCode:  "SUP001",
			productNumber: "ABC",
			colorName:     "blue",
			order:         12,
			want:          "ABC_SUP001_blue_12",
		},
		{
			name:          "attributes are sanitized",
			scope:         ScopeVariant,
			supplierCode:  "SUP 001",
			productNumber: "A.B/C",
			colorName:     "Dark Green",
			order:         3,
			want:          "A-BC_SUP-001_dark-green_3",
		},
		{
			name:          "color case folds",
			scope:         ScopeVariant,
			supplierCode:  "SUP001",
			productNumber: "ABC",
			colorName:     "RED",
			order:         1,
			want:          "ABC_SUP001_red_1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.scope, tt.supplierCode, tt.productNumber, tt.colorName, tt.order)
			if got != tt.want {
				t.Fatalf("Resolve() = %q, want %q", got, tt.want)
			}
			// Same inputs must always yield the same name.
			if again := Resolve(tt.scope, tt.supplierCode, tt.productNumber, tt.colorName, tt.order); again != got {
				t.Fatalf("Resolve() not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SUP001", "SUP001"},
		{"SUP 001", "SUP-001"},
		{"  hello--world! ", "hello-world"},
		{"a_b.c", "a-b-c"},
		{"trailing.", "trailing"},
		{"", ""},
		{"///", ""},
	}
	for _, tt := range tests {
		if got := Token(tt.in); got != tt.want {
			t.Fatalf("Token(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
