package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a JSON document given by a --file flag, or piped on stdin
// when the flag is empty.
type FileReader[T any] struct {
	// Usage overrides the flag help text.
	Usage string
	// Stdin is read when no file is given. Defaults to os.Stdin.
	Stdin *os.File

	fileFlagValue string
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	usage := fr.Usage
	if usage == "" {
		usage = "path to JSON file (reads from stdin if not provided)"
	}
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       usage,
		Destination: &fr.fileFlagValue,
	}
}

func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		stdin := fr.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		if term.IsTerminal(int(stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
