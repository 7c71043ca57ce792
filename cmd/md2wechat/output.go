package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2wechat/internal/fileutil"
)

// Sentinel errors for reading inputs and writing outputs.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrReadImages   = errors.New("failed to read image map")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := fileutil.WriteOutput(path, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}
