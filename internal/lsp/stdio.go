package lsp

import (
	"errors"
	"io"
	"os"
)

// Stdio joins stdin and stdout into the stream an editor talks to.
type Stdio struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// NewStdio returns a Stdio over the process's standard streams.
func NewStdio() *Stdio {
	return &Stdio{In: os.Stdin, Out: os.Stdout}
}

func (s *Stdio) Read(p []byte) (int, error)  { return s.In.Read(p) }
func (s *Stdio) Write(p []byte) (int, error) { return s.Out.Write(p) }

// Close closes both streams.
func (s *Stdio) Close() error {
	return errors.Join(s.In.Close(), s.Out.Close())
}
