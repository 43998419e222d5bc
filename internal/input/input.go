// Package input provides line-based interactive prompts for the CLI.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Confirm asks a yes/no question on stdin. Returns true for y/Y/yes/YES;
// pressing Enter returns defaultYes.
//
// Example:
//
//	if input.Confirm("Roll back 3 journaled change(s)?", false) {
//	    ...
//	}
func Confirm(message string, defaultYes bool) bool {
	return confirm(os.Stdin, message, defaultYes)
}

func confirm(in io.Reader, message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	fmt.Print(promptStyle.Render(message) + " " + hintStyle.Render(hint) + ": ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}
