package main

import (
	"fmt"
	"io"
	"os"

	"analex/internal/source"
)

const stdinName = "<stdin>"

// loadInput reads path into fs; "-" reads stdin as a virtual file.
func loadInput(fs *source.FileSet, path string, stdin io.Reader) (*source.File, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return fs.Get(fs.AddVirtual(stdinName, data)), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return fs.Get(id), nil
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(f)
}
