package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type InputUtils struct {
	In  io.Reader
	Out io.Writer
}

func NewInputUtils() *InputUtils {
	return &InputUtils{In: os.Stdin, Out: os.Stdout}
}

// AskConfirmation asks user for yes/no confirmation
func (i *InputUtils) AskConfirmation(message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(i.Out, "%s (y/N): ", message)

	response, _ := bufio.NewReader(i.In).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// FormatDuration rounds to something readable in a status line.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
