// Package media keeps the uploaded tweet media directory and its listing.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"triage-server/internal/observability"
)

var (
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrFileTooLarge     = errors.New("file too large")
	ErrMediaNotFound    = errors.New("media file not found")
)

// Kind is the broad media category of a file
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

type fileType struct {
	mime string
	kind Kind
}

// Uploads are restricted to these extensions.
var allowed = map[string]fileType{
	".png":  {"image/png", KindImage},
	".jpg":  {"image/jpeg", KindImage},
	".jpeg": {"image/jpeg", KindImage},
	".gif":  {"image/gif", KindImage},
	".mp4":  {"video/mp4", KindVideo},
	".mov":  {"video/quicktime", KindVideo},
	".avi":  {"video/x-msvideo", KindVideo},
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// File is one media file in the library
type File struct {
	Name    string    `json:"name"`
	Path    string    `json:"-"`
	MIME    string    `json:"mime"`
	Kind    Kind      `json:"kind"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Library indexes the media directory. The index follows changes made on
// disk once Watch is running.
type Library struct {
	dir      string
	maxBytes int64
	logger   *observability.Logger

	mu    sync.RWMutex
	files map[string]File
}

// NewLibrary creates dir when missing and indexes what is already there.
func NewLibrary(dir string, maxBytes int64, logger *observability.Logger) (*Library, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	l := &Library{
		dir:      dir,
		maxBytes: maxBytes,
		logger:   logger,
		files:    make(map[string]File),
	}
	if err := l.rescan(); err != nil {
		return nil, err
	}
	return l, nil
}

// Dir is the directory the library serves from
func (l *Library) Dir() string {
	return l.dir
}

// MaxBytes is the upload size limit
func (l *Library) MaxBytes() int64 {
	return l.maxBytes
}

// Watch keeps the index in sync with the directory until ctx is done.
func (l *Library) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create media watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch media directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				l.apply(ctx, evt)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Error(ctx, "Media watcher error", err)
			}
		}
	}()
	return nil
}

func (l *Library) apply(ctx context.Context, evt fsnotify.Event) {
	name := filepath.Base(evt.Name)
	if _, ok := typeOf(name); !ok {
		return
	}
	if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		l.mu.Lock()
		delete(l.files, name)
		l.mu.Unlock()
		return
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if err := l.index(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			l.logger.InfoWithError(ctx, "Failed to index media file", err)
		}
	}
}

// List returns the indexed files sorted by name.
func (l *Library) List() []File {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]File, 0, len(l.files))
	for _, f := range l.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Save stores r under a sanitized version of name, replacing any file with
// the same name. Content beyond the size limit is rejected.
func (l *Library) Save(name string, r io.Reader) (File, error) {
	clean := SanitizeFilename(name)
	if clean == "" {
		return File{}, fmt.Errorf("%w: empty file name", ErrUnsupportedMedia)
	}
	if _, ok := typeOf(clean); !ok {
		return File{}, fmt.Errorf("%w: %s", ErrUnsupportedMedia, filepath.Ext(clean))
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return File{}, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, l.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return File{}, fmt.Errorf("failed to write upload: %w", err)
	}
	if n > l.maxBytes {
		return File{}, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, l.maxBytes)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(l.dir, clean)); err != nil {
		return File{}, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := l.index(clean); err != nil {
		return File{}, err
	}
	return l.Resolve(clean)
}

// Resolve looks up a file by name. Names are sanitized first, so a path can
// never escape the media directory.
func (l *Library) Resolve(name string) (File, error) {
	clean := SanitizeFilename(name)
	l.mu.RLock()
	f, ok := l.files[clean]
	l.mu.RUnlock()
	if ok {
		return f, nil
	}

	// The watcher may not have caught up with a file that was just copied in.
	if err := l.index(clean); err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return File{}, err
		}
		return File{}, fmt.Errorf("%w: %s", ErrMediaNotFound, name)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.files[clean], nil
}

func (l *Library) rescan() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("failed to read media directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := typeOf(e.Name()); !ok {
			continue
		}
		if err := l.index(e.Name()); err != nil {
			if errors.Is(err, ErrFileTooLarge) {
				l.logger.InfoWithError(context.Background(), "Skipping oversized media file", err)
				continue
			}
			return err
		}
	}
	return nil
}

func (l *Library) index(name string) error {
	ft, ok := typeOf(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedMedia, name)
	}
	path := filepath.Join(l.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMediaNotFound, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if info.Size() > l.maxBytes {
		// Files copied straight into the directory skip Save's limit.
		delete(l.files, name)
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, name, info.Size(), l.maxBytes)
	}
	l.files[name] = File{
		Name:    name,
		Path:    path,
		MIME:    ft.mime,
		Kind:    ft.kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	return nil
}

func typeOf(name string) (fileType, bool) {
	ft, ok := allowed[strings.ToLower(filepath.Ext(name))]
	return ft, ok
}

// IsAllowed reports whether name has an accepted media extension.
func IsAllowed(name string) bool {
	_, ok := typeOf(name)
	return ok
}

// SanitizeFilename reduces name to a safe base name: directory parts are
// dropped, runs of unsafe characters become underscores and leading dots
// are removed.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == "/" {
		return ""
	}
	name = unsafeNameChars.ReplaceAllString(name, "_")
	return strings.TrimLeft(name, "._")
}
