package cmd

import (
	"errors"
	"os"
)

// stdoutWriter and stdinReader adapt the process's real stdout/stdin into
// the io.ReadWriter pair internal/script.Driver expects, without pretending
// the opposite direction works.
type stdoutWriter struct{}

func (stdoutWriter) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdoutWriter) Read([]byte) (int, error)    { return 0, errors.New("stdout is not readable") }

type stdinReader struct{}

func (stdinReader) Read(p []byte) (int, error)    { return os.Stdin.Read(p) }
func (stdinReader) Write([]byte) (int, error)     { return 0, errors.New("stdin is not writable") }
