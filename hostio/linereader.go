package hostio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/yan-lang/yan-runtime/domain/ports"
)

// BufferedLineReader reads lines from a plain stream, writing prompts to out.
type BufferedLineReader struct {
	r   *bufio.Reader
	out io.Writer
}

// NewBufferedLineReader creates a reader over in. Prompts go to out, which
// may be nil.
func NewBufferedLineReader(in io.Reader, out io.Writer) *BufferedLineReader {
	return &BufferedLineReader{r: bufio.NewReader(in), out: out}
}

// ReadLine implements ports.LineReader. The trailing line terminator is
// removed. A final line without a terminator is returned without error;
// io.EOF is returned only when no input is left.
func (b *BufferedLineReader) ReadLine(prompt string) (string, error) {
	if prompt != "" && b.out != nil {
		if _, err := io.WriteString(b.out, prompt); err != nil {
			return "", err
		}
	}
	line, err := b.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalLineReader reads lines with interactive editing and history.
type TerminalLineReader struct {
	state *liner.State
}

// NewTerminalLineReader puts the terminal into line-editing mode. Close
// must be called to restore it.
func NewTerminalLineReader() *TerminalLineReader {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return &TerminalLineReader{state: st}
}

// ReadLine implements ports.LineReader. Non-empty lines are added to the
// session history.
func (t *TerminalLineReader) ReadLine(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal.
func (t *TerminalLineReader) Close() error {
	return t.state.Close()
}

// ConsoleLineReader picks its reader on the first ReadLine: a
// TerminalLineReader when in is an interactive terminal, a
// BufferedLineReader otherwise. The terminal is left untouched until input
// is actually requested.
type ConsoleLineReader struct {
	open   func() (ports.LineReader, func() error)
	reader ports.LineReader
	close  func() error
}

var _ ports.LineReader = (*ConsoleLineReader)(nil)

// NewConsoleLineReader creates a console reader over in. Close must be
// called to restore the terminal.
func NewConsoleLineReader(in *os.File, out io.Writer) *ConsoleLineReader {
	return &ConsoleLineReader{open: func() (ports.LineReader, func() error) {
		if isTerminal(in) && liner.TerminalSupported() {
			t := NewTerminalLineReader()
			return t, t.Close
		}
		return NewBufferedLineReader(in, out), nil
	}}
}

// ReadLine implements ports.LineReader.
func (c *ConsoleLineReader) ReadLine(prompt string) (string, error) {
	if c.reader == nil {
		c.reader, c.close = c.open()
	}
	return c.reader.ReadLine(prompt)
}

// Close restores the terminal if it was taken over. It is safe to call more
// than once.
func (c *ConsoleLineReader) Close() error {
	closeFn := c.close
	c.close = nil
	if closeFn == nil {
		return nil
	}
	return closeFn()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
