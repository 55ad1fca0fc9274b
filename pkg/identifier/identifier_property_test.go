package identifier

import (
	"testing"
	"unicode"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestGenerateNeverReserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		segment := rapid.StringMatching(`[A-Z][A-Za-z0-9]{0,12}`).Draw(rt, "segment")

		id := Generate(segment)
		if id != Generate(segment) {
			rt.Fatalf("Generate(%q) is not deterministic", segment)
		}
		if IsReserved(id) {
			rt.Fatalf("Generate(%q) = %q is reserved", segment, id)
		}
		if first, _ := utf8.DecodeRuneInString(id); !unicode.IsLower(first) {
			rt.Fatalf("Generate(%q) = %q does not start lower-case", segment, id)
		}
	})
}
