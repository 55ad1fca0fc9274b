package identifier

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MarkerPrefix is prepended to segments whose identifier would collide with
// a reserved name.
const MarkerPrefix = "Vss"

// ReservedNames lists the structural property names of a compiled node.
var ReservedNames = []string{
	"children",
	"comment",
	"datatype",
	"description",
	"identifier",
	"kind",
	"max",
	"min",
	"parent",
	"path",
	"type",
	"unit",
	"uuid",
	"value",
}

// Generator derives identifiers. The zero value uses ReservedNames and
// MarkerPrefix.
type Generator struct {
	// Reserved overrides ReservedNames when non-nil.
	Reserved []string

	// Marker overrides MarkerPrefix when non-empty.
	Marker string
}

var defaultGenerator Generator

// Generate derives the identifier for segment using the default generator.
func Generate(segment string) string {
	return defaultGenerator.Generate(segment)
}

// IsReserved reports whether name collides with a default reserved name.
func IsReserved(name string) bool {
	return defaultGenerator.IsReserved(name)
}

// Generate derives the identifier for segment. It is deterministic.
func (g Generator) Generate(segment string) string {
	id := join(Tokenize(segment))
	if !g.IsReserved(id) {
		return id
	}
	return join(Tokenize(g.marker() + segment))
}

// IsReserved reports whether name matches a reserved name, ignoring case.
func (g Generator) IsReserved(name string) bool {
	reserved := g.Reserved
	if reserved == nil {
		reserved = ReservedNames
	}
	for _, r := range reserved {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

func (g Generator) marker() string {
	if g.Marker != "" {
		return g.Marker
	}
	return MarkerPrefix
}

// Tokenize splits segment before every uppercase letter and merges runs of
// consecutive single-letter tokens.
func Tokenize(segment string) []string {
	if segment == "" {
		return nil
	}

	var raw []string
	start := 0
	for i, r := range segment {
		if i > start && unicode.IsUpper(r) {
			raw = append(raw, segment[start:i])
			start = i
		}
	}
	raw = append(raw, segment[start:])

	tokens := make([]string, 0, len(raw))
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}
	for _, tok := range raw {
		if utf8.RuneCountInString(tok) == 1 {
			run.WriteString(tok)
			continue
		}
		flush()
		tokens = append(tokens, tok)
	}
	flush()

	return tokens
}

func join(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		switch {
		case i == 0:
			b.WriteString(strings.ToLower(tok))
		case utf8.RuneCountInString(tok) <= 2:
			b.WriteString(tok)
		default:
			b.WriteString(capitalize(tok))
		}
	}
	return b.String()
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
