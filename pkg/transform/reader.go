// File: pkg/transform/reader.go
package transform

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	xtransform "golang.org/x/text/transform"
)

// truncationNotice is appended after the kept characters of an oversized file.
const truncationNotice = "\n... (file truncated due to size limit of %d characters) ..."

// TruncationNotice returns the literal marker used for a given ceiling.
func TruncationNotice(maxChars int) string {
	return fmt.Sprintf(truncationNotice, maxChars)
}

// ContentReader reads files as text in one configured encoding.
type ContentReader struct {
	fsys     FileSystem
	encoding string
	decoder  encoding.Encoding // nil means strict UTF-8
}

// NewContentReader resolves the encoding name once. Empty and "utf-8"
// select strict UTF-8 validation.
func NewContentReader(fsys FileSystem, encodingName string) (*ContentReader, error) {
	r := &ContentReader{fsys: fsys, encoding: DefaultEncoding}
	if isUTF8(encodingName) {
		return r, nil
	}
	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidConfig, encodingName)
	}
	r.decoder = enc
	r.encoding = encodingName
	return r, nil
}

// Read returns the decoded content of path, cut to maxChars characters
// (Unicode code points) plus the truncation notice when it is longer.
func (r *ContentReader) Read(path string, maxChars int) (string, error) {
	if maxChars <= 0 {
		return "", fmt.Errorf("%w: max characters must be positive, got %d", ErrInvalidConfig, maxChars)
	}

	info, err := r.fsys.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: file does not exist: %s: %v", ErrIO, path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: path is not a regular file: %s", ErrIO, path)
	}

	raw, err := r.fsys.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: error reading file %s: %v", ErrIO, path, err)
	}

	content, err := r.decode(raw)
	if err != nil {
		return "", fmt.Errorf("%w: cannot decode %s as %s: %v", ErrIO, path, r.encoding, err)
	}

	return truncate(content, maxChars), nil
}

func (r *ContentReader) decode(raw []byte) (string, error) {
	if r.decoder == nil {
		out, _, err := xtransform.Bytes(encoding.UTF8Validator, raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, _, err := xtransform.Bytes(r.decoder.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// truncate keeps the first maxChars code points of content.
func truncate(content string, maxChars int) string {
	if utf8.RuneCountInString(content) <= maxChars {
		return content
	}
	kept := 0
	for i := range content {
		if kept == maxChars {
			return content[:i] + TruncationNotice(maxChars)
		}
		kept++
	}
	return content
}
