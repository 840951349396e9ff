// Package naming computes canonical picture names from catalog identity.
//
// A picture's name is fully determined by its owner: the product number, the
// supplier code, the variant color (absent for product-level pictures) and the
// display order. No randomness and no timestamps ever enter a name, so the
// same inputs always produce the same name and a rename cascade can be
// re-run safely.
package naming

import (
	"fmt"
	"strings"
)

// Scope says whether a picture hangs off the product itself or off one of its
// color variants.
type Scope string

const (
	ScopeProduct Scope = "product"
	ScopeVariant Scope = "variant"
)

const (
	separator = "_"
	// orderPad is the minimum digit width of the order suffix.
	orderPad = 1
)

// Resolve returns the canonical object name for a picture. colorName is
// ignored for ScopeProduct. The result carries no file extension; the store
// keys objects by bare name.
func Resolve(scope Scope, supplierCode, productNumber, colorName string, order int) string {
	parts := []string{
		Token(productNumber),
		Token(supplierCode),
	}
	if scope == ScopeVariant {
		parts = append(parts, strings.ToLower(Token(colorName)))
	}
	parts = append(parts, fmt.Sprintf("%0*d", orderPad, order))
	return strings.Join(parts, separator)
}

// Token sanitizes a raw identity attribute into a name component: trims
// whitespace, collapses inner whitespace to single dashes and drops every
// character that is not a letter, digit or dash. The separator itself can
// never appear inside a token.
func Token(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	lastDash := false
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == '-', r == ' ', r == '\t', r == '_', r == '.':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		default:
			// dropped
		}
	}
	return strings.TrimRight(b.String(), "-")
}
