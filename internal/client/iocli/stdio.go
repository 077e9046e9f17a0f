package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio is the real-terminal IO implementation. Out and Err default to
// stdout/stderr; tests point them at buffers.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	reader *bufio.Reader
}

func NewStdio() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

var _ IO = (*Stdio)(nil)

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.Out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.Out, format, a...)
}

func (s *Stdio) Errorf(format string, a ...any) {
	fmt.Fprintf(s.Err, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.Out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	// one shared reader, otherwise buffered lines are lost between calls
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}
	input, err := s.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword reads without echo when stdin is a terminal, otherwise
// falls back to a plain line read so piping input keeps working.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	file, ok := s.In.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(file.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

// Confirm asks a yes/no question; only "y"/"o"/"yes"/"oui" count as yes.
func (s *Stdio) Confirm(prompt string) (bool, error) {
	answer, err := s.ReadInput(prompt + " [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "o", "oui":
		return true, nil
	default:
		return false, nil
	}
}
