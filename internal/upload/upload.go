// Package upload writes product and category images to the upload directory
// and maps them to the public references stored in the database.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
)

const (
	sniffLen        = 512
	maxNameAttempts = 1000
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Image is an uploaded file that has not been stored yet.
type Image struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type Store struct {
	fs        afero.Fs
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewStore(fs afero.Fs, dir, urlPrefix string, maxBytes int64) *Store {
	return &Store{
		fs:        fs,
		dir:       filepath.Clean(dir),
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxBytes:  maxBytes,
	}
}

// Init creates the upload directory.
func (s *Store) Init() error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	return nil
}

// Name is the file name an image of the given owner code is stored under.
func Name(owner, filename string) string {
	return sanitize(owner) + "_" + baseName(filename)
}

func baseName(filename string) string {
	base := sanitize(filepath.Base(strings.ReplaceAll(filename, `\`, "/")))
	if base == "" || base == "." {
		base = "image"
	}
	return base
}

// Save checks and writes img as <owner>_<filename>. It returns the public
// reference of the stored file. Stored files are never overwritten: when the
// name is taken, the file becomes <owner>_<n>_<filename>.
func (s *Store) Save(owner string, img *Image) (string, error) {
	if img == nil || img.Content == nil {
		return "", apperr.Invalid("image", code.MsgInvalidImage, errors.New("no content"))
	}
	if img.Size > s.maxBytes {
		return "", apperr.Invalidf("image", code.MsgImageTooLarge, "%d bytes exceeds %d", img.Size, s.maxBytes)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(img.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", apperr.Invalid("image", code.MsgInvalidImage, errors.New("empty file"))
	}
	if ct := http.DetectContentType(head); !allowedTypes[ct] {
		return "", apperr.Invalidf("image", code.MsgInvalidImage, "content type %s", ct)
	}

	if err := s.Init(); err != nil {
		return "", err
	}

	name, f, err := s.create(owner, img.Filename)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, name)

	body := io.MultiReader(bytes.NewReader(head), img.Content)
	written, err := io.Copy(f, io.LimitReader(body, s.maxBytes+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = apperr.Invalidf("image", code.MsgImageTooLarge, "more than %d bytes", s.maxBytes)
	}
	if err != nil {
		_ = s.fs.Remove(target)
		if errors.Is(err, apperr.ErrValidation) {
			return "", err
		}
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// create opens a file that did not exist before under the first free name.
func (s *Store) create(owner, filename string) (string, afero.File, error) {
	base := baseName(filename)
	name := sanitize(owner) + "_" + base
	for n := 2; n <= maxNameAttempts+1; n++ {
		f, err := s.fs.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return name, f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, fmt.Errorf("create %s: %w", name, err)
		}
		name = sanitize(owner) + "_" + strconv.Itoa(n) + "_" + base
	}
	return "", nil, fmt.Errorf("create %s: no free name after %d attempts", Name(owner, filename), maxNameAttempts)
}

// Remove deletes the file behind ref. References outside the upload prefix
// and missing files are ignored.
func (s *Store) Remove(ref string) error {
	p, ok := s.Path(ref)
	if !ok {
		return nil
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", ref, err)
	}
	return nil
}

// Path maps a stored reference back onto the upload directory.
func (s *Store) Path(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, s.urlPrefix+"/")
	if !ok || name == "" || name != sanitize(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

func (s *Store) URLPrefix() string {
	return s.urlPrefix
}

// FileSystem serves the upload directory over HTTP.
func (s *Store) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.dir)
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
