package main

import (
	"io"
	"os"
	"time"

	mdpress "github.com/alnah/go-mdpress"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and style loading.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Styles mdpress.StyleLoader
}

// DefaultEnv returns production environment with embedded styles.
func DefaultEnv() *Environment {
	// Error ignored: an empty base path always yields the embedded loader.
	loader, _ := mdpress.NewStyleLoader("")
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Styles: loader,
	}
}
