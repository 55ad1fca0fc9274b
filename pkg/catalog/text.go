package catalog

import (
	"bytes"
	"fmt"
	"strings"
)

// block is one blank-line delimited record in a text catalog.
type block struct {
	line  int
	lines []string
}

// ParseText parses a line-oriented catalog.
func ParseText(data []byte, opts Options) (*Catalog, error) {
	c := newCollector(opts, FormatText)

	for _, b := range splitBlocks(data) {
		path, err := parseHeader(b)
		if err != nil {
			return nil, err
		}

		text := "\n" + strings.Join(b.lines[1:], "\n") + "\n"
		get := func(key string) (string, bool) {
			return lookupAttr(text, key)
		}
		kindText, _ := get("type")
		rec, err := buildRecord(path, b.line, get)
		if err := c.add(rec, err, kindText); err != nil {
			return nil, err
		}
	}

	return c.result(), nil
}

// splitBlocks groups trimmed, non-comment lines into blank-line delimited
// blocks.
func splitBlocks(data []byte) []block {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var blocks []block
	var cur *block
	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			cur = nil
		case strings.HasPrefix(line, "#"):
			// comment
		default:
			if cur == nil {
				blocks = append(blocks, block{line: i + 1})
				cur = &blocks[len(blocks)-1]
			}
			cur.lines = append(cur.lines, line)
		}
	}
	return blocks
}

// parseHeader extracts the path from the "<path>:" line of a block.
func parseHeader(b block) (string, error) {
	header := b.lines[0]
	if !strings.HasSuffix(header, ":") {
		return "", &RecordError{
			Line: b.line,
			Err:  fmt.Errorf("%w: expected \"<path>:\", got %q", ErrMalformedCatalog, header),
		}
	}
	path := unquote(strings.TrimSpace(strings.TrimSuffix(header, ":")))
	if err := ValidatePath(path); err != nil {
		return "", &RecordError{
			Line: b.line,
			Err:  fmt.Errorf("%w: %w", ErrMalformedCatalog, err),
		}
	}
	return path, nil
}

// lookupAttr finds a newline-bounded "key: value" entry in text, which
// must start and end with a newline. The first occurrence wins.
func lookupAttr(text, key string) (string, bool) {
	needle := "\n" + key + ":"
	i := strings.Index(text, needle)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(needle):]
	end := strings.IndexByte(rest, '\n')
	return unquote(strings.TrimSpace(rest[:end])), true
}
