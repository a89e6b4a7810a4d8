package main

import (
	"fmt"
	"io"
	"os"
)

// readSource reads the named file, or stdin when args is empty or "-".
// The returned name is used in diagnostics.
func readSource(args []string) (name string, src []byte, err error) {
	if len(args) == 0 || args[0] == "-" {
		src, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", src, nil
	}
	src, err = os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return args[0], src, nil
}
