// Package term reads operator input: masked secrets and typed confirmations.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	xterm "golang.org/x/term"
)

const confirmAnswer = "yes"

var (
	ErrEmptyInput = errors.New("empty input")
	ErrAborted    = errors.New("aborted")
)

// Terminal prompts on out and reads answers from in. Secrets are read without
// echo when in is a terminal.
type Terminal struct {
	out    io.Writer
	reader *bufio.Reader
	fd     int
	isTerm bool
}

// New returns a Terminal over the process's stdin and stdout.
func New() *Terminal {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO returns a Terminal over in and out. Masked input is used only when
// in is an *os.File attached to a terminal.
func NewWithIO(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:    out,
		reader: bufio.NewReader(in),
	}

	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd())
		t.isTerm = xterm.IsTerminal(t.fd)
	}

	return t
}

// ReadPassword prints "<prompt>: " and reads a secret line. Leading and trailing
// whitespace is dropped and an empty answer is rejected.
func (t *Terminal) ReadPassword(prompt string) (string, error) {
	//nolint:forbidigo // Password input requires direct terminal I/O
	fmt.Fprintf(t.out, "%s: ", prompt)

	var (
		line string
		err  error
	)
	if t.isTerm {
		var raw []byte
		raw, err = xterm.ReadPassword(t.fd)
		line = string(raw)
		//nolint:forbidigo // New line after password input
		fmt.Fprintln(t.out)
	} else {
		line, err = t.readLine()
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read password from terminal")
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrEmptyInput
	}

	return line, nil
}

// Confirm prints "<prompt>? " and returns ErrAborted unless the operator
// answers exactly "yes".
func (t *Terminal) Confirm(prompt string) error {
	//nolint:forbidigo // Confirmation requires direct terminal I/O
	fmt.Fprintf(t.out, "%s? ", prompt)

	line, err := t.readLine()
	if err != nil {
		return errors.Wrap(err, "failed to read confirmation")
	}

	if line != confirmAnswer {
		return ErrAborted
	}

	return nil
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
