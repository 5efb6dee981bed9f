package ports

// LineReader supplies lines of guest input for readLine() and input().
type LineReader interface {
	// ReadLine writes prompt (if any) and returns the next line without the
	// trailing newline.
	ReadLine(prompt string) (string, error)
}
