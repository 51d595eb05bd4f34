// Package fileval reads source files after checking they can be linted at all:
// the size limit from [file-validation] and valid UTF-8 text.
package fileval

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"
)

// utf8BOM is dropped from the start of a file before validation and parsing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileTooLargeError is returned when a file exceeds the configured maximum size.
type FileTooLargeError struct {
	Path    string
	Size    int64
	MaxSize int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf(
		"file too large (%d > %d bytes); increase [file-validation] max-file-size in .javalint.toml to override",
		e.Size, e.MaxSize,
	)
}

// NotUTF8Error is returned when a file is not valid UTF-8 text.
type NotUTF8Error struct {
	Path string
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *NotUTF8Error) Error() string {
	return fmt.Sprintf("file is not valid UTF-8 text (invalid byte at offset %d)", e.Offset)
}

// ReadFile validates and reads the file at path. A maxSize of zero or less
// disables the size check.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, &FileTooLargeError{Path: path, Size: info.Size(), MaxSize: maxSize}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(path, content)
}

// Validate checks in-memory content and returns it without a leading BOM.
func Validate(path string, content []byte) ([]byte, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if off := invalidOffset(content); off >= 0 {
		return nil, &NotUTF8Error{Path: path, Offset: off}
	}
	return content, nil
}

// invalidOffset returns the offset of the first invalid UTF-8 sequence, or -1.
func invalidOffset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
