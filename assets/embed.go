// Package assets embeds the default word lists so the service runs even when
// no word files are configured.
package assets

import (
	"bytes"
	"embed"
	"io"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

func open(name string) (io.Reader, error) {
	b, err := FS.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// Answers opens the embedded solution list.
func Answers() (io.Reader, error) { return open("answers.txt") }

// Allowed opens the embedded extra-guess list.
func Allowed() (io.Reader, error) { return open("allowed.txt") }
