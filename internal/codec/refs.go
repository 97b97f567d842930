package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/tocadiscos/internal/model"
)

// EncodeRefs renders refs in the reference-list wire format.
func EncodeRefs(refs []model.Ref) string {
	if len(refs) == 0 {
		return "[]"
	}
	data, err := json.Marshal(refs)
	if err != nil {
		// Ref marshaling cannot fail for int/string pairs.
		panic(err)
	}
	return string(data)
}

// DecodeRefs parses a reference-list cell. Empty cells and the "N/A" marker
// decode to an empty list.
func DecodeRefs(cell string) ([]model.Ref, error) {
	cell = strings.TrimSpace(cell)
	if isMissing(cell) {
		return []model.Ref{}, nil
	}

	var refs []model.Ref
	jsonErr := json.Unmarshal([]byte(cell), &refs)
	if jsonErr == nil {
		if refs == nil {
			refs = []model.Ref{}
		}
		return refs, nil
	}

	refs, err := decodeLiteralRefs(cell)
	if err != nil {
		return []model.Ref{}, fmt.Errorf("malformed reference list %q: %w", truncate(cell, 40), err)
	}
	return refs, nil
}

// decodeLiteralRefs reads [(id, 'title'), ...] with single or double quoted
// titles, tuple or list pairs and an optional trailing comma.
func decodeLiteralRefs(s string) ([]model.Ref, error) {
	sc := &literalScanner{src: s}

	if !sc.consume('[') {
		return nil, sc.errorf("expected '['")
	}

	refs := []model.Ref{}
	for {
		if sc.consume(']') {
			break
		}
		if len(refs) > 0 {
			if !sc.consume(',') {
				return nil, sc.errorf("expected ',' or ']'")
			}
			if sc.consume(']') {
				break
			}
		}

		ref, err := sc.pair()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	sc.skipSpace()
	if sc.pos != len(sc.src) {
		return nil, sc.errorf("unexpected trailing input")
	}
	return refs, nil
}

type literalScanner struct {
	src string
	pos int
}

func (sc *literalScanner) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", sc.pos, fmt.Sprintf(format, args...))
}

func (sc *literalScanner) skipSpace() {
	for sc.pos < len(sc.src) && strings.ContainsRune(" \t\r\n", rune(sc.src[sc.pos])) {
		sc.pos++
	}
}

func (sc *literalScanner) consume(c byte) bool {
	sc.skipSpace()
	if sc.pos < len(sc.src) && sc.src[sc.pos] == c {
		sc.pos++
		return true
	}
	return false
}

func (sc *literalScanner) pair() (model.Ref, error) {
	closer := byte(')')
	if !sc.consume('(') {
		if !sc.consume('[') {
			return model.Ref{}, sc.errorf("expected '(' or '['")
		}
		closer = ']'
	}

	first, err := sc.value()
	if err != nil {
		return model.Ref{}, err
	}
	id, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return model.Ref{}, sc.errorf("reference id %q is not an integer", first)
	}

	if !sc.consume(',') {
		return model.Ref{}, sc.errorf("expected ','")
	}
	title, err := sc.value()
	if err != nil {
		return model.Ref{}, err
	}

	sc.consume(',')
	if !sc.consume(closer) {
		return model.Ref{}, sc.errorf("expected %q", closer)
	}
	return model.Ref{ID: id, Title: title}, nil
}

// value reads a quoted string or a bare numeric token.
func (sc *literalScanner) value() (string, error) {
	sc.skipSpace()
	if sc.pos >= len(sc.src) {
		return "", sc.errorf("unexpected end of input")
	}

	quote := sc.src[sc.pos]
	if quote != '\'' && quote != '"' {
		start := sc.pos
		for sc.pos < len(sc.src) && strings.ContainsRune("0123456789+-.eE", rune(sc.src[sc.pos])) {
			sc.pos++
		}
		if start == sc.pos {
			return "", sc.errorf("expected a value")
		}
		return sc.src[start:sc.pos], nil
	}

	sc.pos++
	var b strings.Builder
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]
		switch {
		case c == '\\' && sc.pos+1 < len(sc.src):
			sc.pos++
			switch next := sc.src[sc.pos]; next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(next)
			}
		case c == quote:
			sc.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
		sc.pos++
	}
	return "", sc.errorf("unterminated string")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
