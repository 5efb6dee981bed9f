package ports

// DocumentParser parses raw configuration bytes into a generic document.
type DocumentParser interface {
	// Parse unmarshals data into a generic map.
	Parse(data []byte) (map[string]any, error)
}
