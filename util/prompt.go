package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompts read from Stdin and write to Stdout; tests replace them.
var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
)

// readAnswer returns the trimmed reply, or "" when input is exhausted.
func readAnswer() string {
	response, err := bufio.NewReader(Stdin).ReadString('\n')
	if err != nil && response == "" {
		return ""
	}
	return strings.TrimSpace(response)
}

func PromptString(prompt string, def string) string {
	fmt.Fprintf(Stdout, "%s (%s): ", prompt, def)

	response := readAnswer()
	if response == "" {
		return def
	}

	return response
}

func PromptYN(prompt string, def bool) bool {
	if def {
		fmt.Fprintf(Stdout, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(Stdout, "%s (y/N): ", prompt)
	}

	response := readAnswer()
	if response == "" {
		return def
	}

	return strings.ToLower(response) == "y"
}
