package app

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/dpgen/internal/core/autostart"
	"github.com/example/dpgen/internal/core/item"
	"github.com/example/dpgen/internal/ports/primary"
)

// ItemAssembler turns item source files into data partition items.
type ItemAssembler struct {
	encoder *EncoderClient
}

// NewItemAssembler creates a new ItemAssembler.
func NewItemAssembler(encoder *EncoderClient) *ItemAssembler {
	return &ItemAssembler{encoder: encoder}
}

// AssembleCommandLog encodes every command of a command log, in file order.
// The autostart state is threaded in and out so ordering holds across files.
// Blank lines and lines starting with // or # are skipped.
func (a *ItemAssembler) AssembleCommandLog(
	ctx context.Context,
	encoderPath, source string,
	r io.Reader,
	state autostart.State,
	progress primary.ProgressFunc,
) ([]item.Item, autostart.State, error) {
	var items []item.Item

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		where := fmt.Sprintf("%s:%d", source, lineNo)

		tokens, err := item.Tokenize(line)
		if err != nil {
			return nil, state, fmt.Errorf("%s: %w", where, err)
		}

		next, err := autostart.Advance(state, tokens[0])
		if err != nil {
			return nil, state, fmt.Errorf("%s: %w", where, err)
		}
		state = next

		emit(progress, primary.Progress{
			Phase:   primary.PhaseCommand,
			Message: "Running command: " + strings.Join(append([]string{encoderPath}, tokens...), " "),
		})

		it, output, err := a.encoder.Encode(ctx, encoderPath, tokens)
		if err != nil {
			return nil, state, fmt.Errorf("%s: %w", where, err)
		}
		it.Source = where
		items = append(items, it)

		emit(progress, primary.Progress{Phase: primary.PhaseCommand, Message: tokens[0], Detail: output})
	}
	if err := scanner.Err(); err != nil {
		return nil, state, fmt.Errorf("failed to read %s: %w", source, err)
	}

	return items, state, nil
}

// AssembleBootLog wraps a keyword-detector boot log as a single item, unmodified.
func (a *ItemAssembler) AssembleBootLog(source string, r io.Reader) (item.Item, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return item.Item{}, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return item.NewBootLog(buf.Bytes(), source), nil
}

func emit(progress primary.ProgressFunc, p primary.Progress) {
	if progress != nil {
		progress(p)
	}
}
