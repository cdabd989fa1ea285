package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"runtime"
	"strings"
)

var (
	// ErrSelectionCancelled marks a picker result where the user backed out.
	ErrSelectionCancelled = errors.New("image selection cancelled")
	// ErrResourceNotFound is returned when a handle no longer resolves to readable bytes.
	ErrResourceNotFound = errors.New("image resource not found")
	// ErrDecodeFailure is returned when the stream holds no decodable image.
	ErrDecodeFailure = errors.New("image decode failed")
)

// Handle is an opaque reference to a user-selected image: a plain path or a file:// URI.
// Ephemeral handles point at temporary files that are removed once their stream closes.
type Handle struct {
	URI       string
	Ephemeral bool
}

// FileHandle returns a handle for a path on disk.
func FileHandle(path string) Handle { return Handle{URI: path} }

func (h Handle) String() string { return h.URI }

// Discard removes the file behind an ephemeral handle that will never be
// opened. It is a no-op for regular handles.
func (h Handle) Discard() error {
	if !h.Ephemeral || h.URI == "" {
		return nil
	}
	if err := os.Remove(h.URI); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard %s: %w", h.URI, err)
	}
	return nil
}

// Selection is the single value an image picker delivers.
type Selection struct {
	Handle Handle
	Err    error
}

// Selected wraps a successful pick.
func Selected(h Handle) Selection { return Selection{Handle: h} }

// Cancelled is the result of a dismissed picker.
func Cancelled() Selection { return Selection{Err: ErrSelectionCancelled} }

// Failed wraps a picker error.
func Failed(err error) Selection { return Selection{Err: err} }

// OK reports whether the selection carries a usable handle.
func (s Selection) OK() bool { return s.Err == nil && s.Handle.URI != "" }

// Resolver opens the byte stream behind a handle.
type Resolver interface {
	Open(h Handle) (io.ReadCloser, error)
}

// FileResolver resolves plain paths and file:// URIs from the local filesystem.
type FileResolver struct{}

// Open returns a stream for h. Every failure to open wraps ErrResourceNotFound
// together with the underlying cause.
func (FileResolver) Open(h Handle) (io.ReadCloser, error) {
	path, err := localPath(h.URI, runtime.GOOS)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrResourceNotFound, h.URI, err)
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrResourceNotFound, h.URI)
	}
	if h.Ephemeral {
		return &removeOnClose{File: f, path: path}, nil
	}
	return f, nil
}

func localPath(uri, goos string) (string, error) {
	if uri == "" {
		return "", fmt.Errorf("%w: empty handle", ErrResourceNotFound)
	}
	if !strings.HasPrefix(uri, "file:") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrResourceNotFound, uri, err)
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if goos == "windows" {
		// file:///C:/x.jpg parses to "/C:/x.jpg".
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' && isDriveLetter(p[1]) {
			p = p[1:]
		}
		p = strings.ReplaceAll(p, "/", `\`)
	}
	return p, nil
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// removeOnClose deletes the backing temp file once the stream has been consumed.
type removeOnClose struct {
	*os.File
	path string
}

func (r *removeOnClose) Close() error {
	err := r.File.Close()
	if rmErr := os.Remove(r.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}
