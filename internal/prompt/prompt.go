package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrAborted means the user closed the prompt (Ctrl-C, Ctrl-D or end of input)
// or the context was cancelled while waiting for a choice.
var ErrAborted = errors.New("prompt aborted")

type Chooser interface {
	Choose(ctx context.Context, label string, items []string) (string, error)
}

// New picks the arrow-key selector for terminals and the numbered menu otherwise.
func New(in *os.File, out *os.File) Chooser {
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return &Select{Size: 12}
	}
	return NewMenu(in, out)
}

// Select is an interactive list backed by promptui.
type Select struct {
	Size int

	// Stdin and Stdout default to the process streams.
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// Choose runs promptui in raw mode, where Ctrl-C arrives as a key press rather
// than a signal, so ctx is only checked before the list is drawn.
func (s *Select) Choose(ctx context.Context, label string, items []string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrAborted
	}

	selector := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   s.Size,
		Stdin:  s.Stdin,
		Stdout: s.Stdout,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}

	_, choice, err := selector.Run()
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	return choice, nil
}

// Menu prints a numbered list and reads one line per choice.
type Menu struct {
	reader *bufio.Reader
	out    io.Writer

	// pending holds a read that was abandoned by a cancelled Choose.
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{reader: bufio.NewReader(in), out: out}
}

// Choose accepts an item number or name. Anything else is returned as typed so
// the caller can report it.
func (menu *Menu) Choose(ctx context.Context, label string, items []string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrAborted
	}

	for i, item := range items {
		fmt.Fprintf(menu.out, "%3d) %s\n", i+1, item)
	}
	fmt.Fprintf(menu.out, "%s [1-%d]: ", label, len(items))

	line, err := menu.readLine(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(menu.out)
		return "", ErrAborted
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	choice := strings.TrimSpace(line)
	if choice == "" {
		return "", ErrAborted
	}
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(items) {
		return items[n-1], nil
	}
	return choice, nil
}

// readLine waits for one line of input or for ctx to be done. A read that is
// still blocked when ctx ends is picked up by the next call.
func (menu *Menu) readLine(ctx context.Context) (string, error) {
	if menu.pending == nil {
		pending := make(chan readResult, 1)
		go func() {
			line, err := menu.reader.ReadString('\n')
			pending <- readResult{line: line, err: err}
		}()
		menu.pending = pending
	}

	select {
	case result := <-menu.pending:
		menu.pending = nil
		return result.line, result.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
