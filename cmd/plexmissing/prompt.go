package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"plexmissing/internal/services"
)

type inputLine struct {
	text string
	err  error
}

// prompter reads answers on a background goroutine so an interrupt can
// abandon a prompt that is blocked on stdin.
type prompter struct {
	in    *bufio.Reader
	out   io.Writer
	lines chan inputLine
	start sync.Once
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, lines: make(chan inputLine)}
}

// ask repeats the prompt until a non-empty answer arrives.
func (p *prompter) ask(ctx context.Context, label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		answer, err := p.readLine(ctx)
		if answer != "" && (err == nil || errors.Is(err, io.EOF)) {
			return answer, nil
		}
		if err != nil {
			fmt.Fprintln(p.out)
			return "", p.abort(err)
		}
	}
}

// confirm asks a yes/no question defaulting to no.
func (p *prompter) confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, err := p.readLine(ctx)
	if err != nil && (answer == "" || !errors.Is(err, io.EOF)) {
		fmt.Fprintln(p.out)
		return false, p.abort(err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *prompter) abort(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: no input", services.ErrAborted)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", services.ErrAborted, err)
	default:
		return fmt.Errorf("read input: %w", err)
	}
}

func (p *prompter) readLine(ctx context.Context) (string, error) {
	p.start.Do(func() { go p.scan() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}

func (p *prompter) scan() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		p.lines <- inputLine{text: strings.TrimSpace(text), err: err}
		if err != nil {
			return
		}
	}
}
