package item

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote reports a quoted argument that is never closed.
var ErrUnterminatedQuote = errors.New("unterminated quoted argument")

// scanState is the tokenizer state.
type scanState int

const (
	outsideQuote scanState = iota
	insideQuote
)

// Tokenize splits a command-log line on whitespace, keeping double-quoted spans as
// one argument. A word containing exactly one quote opens or closes a span, so
// `SET_USB_VENDOR_STRING "Acme Co" 1` yields three tokens with `"Acme Co"` intact.
// A span is taken verbatim from the line, quotes and inner whitespace included.
func Tokenize(line string) ([]string, error) {
	var (
		tokens    []string
		spanStart int
		state     = outsideQuote
	)

	for _, w := range words(line) {
		word := line[w.start:w.end]
		togglesQuote := strings.Count(word, `"`) == 1

		switch state {
		case outsideQuote:
			if togglesQuote {
				spanStart = w.start
				state = insideQuote
				continue
			}
			tokens = append(tokens, word)
		case insideQuote:
			if togglesQuote {
				tokens = append(tokens, line[spanStart:w.end])
				state = outsideQuote
			}
		}
	}

	if state == insideQuote {
		return nil, fmt.Errorf("%w: %s", ErrUnterminatedQuote, strings.TrimSpace(line[spanStart:]))
	}
	return tokens, nil
}

// wordBounds is the byte range of one whitespace-separated word.
type wordBounds struct {
	start, end int
}

func words(line string) []wordBounds {
	var (
		out   []wordBounds
		start = -1
	)
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				out = append(out, wordBounds{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, wordBounds{start, len(line)})
	}
	return out
}
