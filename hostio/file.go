package hostio

import (
	stdErrors "errors"
	"io"
	"os"
	"strings"

	"github.com/yan-lang/yan-runtime/domain/errors"
)

// Open modes accepted by Open.
const (
	ModeRead      = "r"
	ModeWrite     = "w"
	ModeAppend    = "wa"
	ModeReadWrite = "wr"
)

// FileObject is an open host file.
type FileObject struct {
	f      *os.File
	name   string
	mode   string
	closed bool
}

// Open opens path with one of the guest open modes. An empty mode means
// ModeRead.
func Open(path, mode string) (*FileObject, error) {
	if mode == "" {
		mode = ModeRead
	}

	var flag int
	switch mode {
	case ModeRead:
		flag = os.O_RDONLY
	case ModeWrite:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case ModeAppend:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case ModeReadWrite:
		flag = os.O_RDWR
	default:
		return nil, &errors.InvalidModeError{Mode: mode}
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, &errors.IOError{Operation: "open", Path: path, Err: unwrapPathError(err)}
	}
	return &FileObject{f: f, name: path, mode: mode}, nil
}

// Name returns the path the file was opened with.
func (fo *FileObject) Name() string {
	return fo.name
}

// Mode returns the mode the file was opened with.
func (fo *FileObject) Mode() string {
	return fo.mode
}

// Read returns everything from the current position to the end of the file.
func (fo *FileObject) Read() (string, error) {
	if err := fo.check("read"); err != nil {
		return "", err
	}
	data, err := io.ReadAll(fo.f)
	if err != nil {
		return "", fo.wrap("read", err)
	}
	return string(data), nil
}

// ReadLines returns the remaining lines, each keeping its trailing newline.
func (fo *FileObject) ReadLines() ([]string, error) {
	content, err := fo.Read()
	if err != nil {
		return nil, err
	}
	if content == "" {
		return []string{}, nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// ReadBuf is not supported by the host runtime.
func (fo *FileObject) ReadBuf(size int) (string, error) {
	return "", &errors.NotImplementedError{Operation: "FileObject.readBuf"}
}

// Write writes s at the current position.
func (fo *FileObject) Write(s string) error {
	if err := fo.check("write"); err != nil {
		return err
	}
	if _, err := io.WriteString(fo.f, s); err != nil {
		return fo.wrap("write", err)
	}
	return nil
}

// Length returns the current size of the file in bytes.
func (fo *FileObject) Length() (int64, error) {
	if err := fo.check("stat"); err != nil {
		return 0, err
	}
	info, err := fo.f.Stat()
	if err != nil {
		return 0, fo.wrap("stat", err)
	}
	return info.Size(), nil
}

// IsEOF reports whether the file position is at or past the end.
func (fo *FileObject) IsEOF() (bool, error) {
	size, err := fo.Length()
	if err != nil {
		return false, err
	}
	pos, err := fo.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, fo.wrap("seek", err)
	}
	return pos >= size, nil
}

// Close closes the file. Closing twice is an error.
func (fo *FileObject) Close() error {
	if err := fo.check("close"); err != nil {
		return err
	}
	fo.closed = true
	if err := fo.f.Close(); err != nil {
		return fo.wrap("close", err)
	}
	return nil
}

// Closed reports whether Close has been called.
func (fo *FileObject) Closed() bool {
	return fo.closed
}

func (fo *FileObject) check(op string) error {
	if fo.closed {
		return &errors.IOError{Operation: op, Path: fo.name, Err: os.ErrClosed}
	}
	return nil
}

func (fo *FileObject) wrap(op string, err error) error {
	return &errors.IOError{Operation: op, Path: fo.name, Err: unwrapPathError(err)}
}

// unwrapPathError strips *fs.PathError so the path is not reported twice.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if stdErrors.As(err, &pe) {
		return pe.Err
	}
	return err
}
