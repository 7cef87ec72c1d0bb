package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNoTerminal no hay terminal para pedir el secreto de forma interactiva.
var ErrNoTerminal = errors.New("no hay terminal para pedir el password (usar --password o --password-file)")

// Prompter pide un secreto al operador.
type Prompter interface {
	Secret(label string) (string, error)
}

// TerminalPrompter lee de la terminal con eco desactivado; el prompt va a Out (stderr).
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer
}

// NewTerminalPrompter usa stdin y stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Secret pide el secreto dos veces y exige que coincidan.
func (p *TerminalPrompter) Secret(label string) (string, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoTerminal
	}
	first, err := p.read(fd, label+": ")
	if err != nil {
		return "", err
	}
	second, err := p.read(fd, "Confirmar "+label+": ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("los valores ingresados no coinciden")
	}
	return first, nil
}

func (p *TerminalPrompter) read(fd int, prompt string) (string, error) {
	fmt.Fprint(p.Out, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.Out)
	if err != nil {
		return "", fmt.Errorf("leer password: %w", err)
	}
	return string(b), nil
}
