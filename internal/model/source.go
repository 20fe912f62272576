// Package model defines the data structures shared by the repair engine,
// the balance validator and the batch workflow.
package model

// Path represents a file system path.
type Path string

// SourceFile is one target file split into lines. Every line keeps its
// original terminator bytes so joining Lines reproduces the file exactly.
type SourceFile struct {
	Path  Path
	Lines []string
}

// Content joins the lines back into the raw file text.
func (s SourceFile) Content() string {
	size := 0
	for _, line := range s.Lines {
		size += len(line)
	}

	buf := make([]byte, 0, size)
	for _, line := range s.Lines {
		buf = append(buf, line...)
	}

	return string(buf)
}
