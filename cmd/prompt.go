package cmd

import (
	"fmt"
	"io"
)

// consoleInstaller prints the derived prompt line so shell
// integrations can pick it up. Failures here are cosmetic and are
// ignored by the session.
type consoleInstaller struct {
	out io.Writer
}

func (p consoleInstaller) Install(prompt string) error {
	if p.out == nil {
		return nil
	}
	_, err := fmt.Fprintln(p.out, prompt)
	return err
}
