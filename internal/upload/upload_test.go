package upload_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/afero"

	"github.com/vinestrading/catalog-service/internal/error/apperr"
	"github.com/vinestrading/catalog-service/internal/error/code"
	"github.com/vinestrading/catalog-service/internal/upload"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newStore(maxBytes int64) (*upload.Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	return upload.NewStore(fs, "uploads", "/static/uploads/", maxBytes), fs
}

func TestName(t *testing.T) {
	c := qt.New(t)
	c.Assert(upload.Name("CH-01", "photo.png"), qt.Equals, "CH-01_photo.png")
	c.Assert(upload.Name("CH-01", "my photo (1).png"), qt.Equals, "CH-01_my_photo__1_.png")
	c.Assert(upload.Name("X", "../../etc/passwd"), qt.Equals, "X_passwd")
	c.Assert(upload.Name("X", `C:\Users\me\pic.jpg`), qt.Equals, "X_pic.jpg")
	c.Assert(upload.Name("X", ""), qt.Equals, "X_image")
}

func TestSaveAndRemove(t *testing.T) {
	c := qt.New(t)
	store, fs := newStore(1 << 20)

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 100)...)
	ref, err := store.Save("CH-01", &upload.Image{Filename: "photo.png", Content: bytes.NewReader(content)})
	c.Assert(err, qt.IsNil)
	c.Assert(ref, qt.Equals, "/static/uploads/CH-01_photo.png")

	stored, err := afero.ReadFile(fs, "uploads/CH-01_photo.png")
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.DeepEquals, content)

	p, ok := store.Path(ref)
	c.Assert(ok, qt.IsTrue)
	c.Assert(p, qt.Equals, "uploads/CH-01_photo.png")

	c.Assert(store.Remove(ref), qt.IsNil)
	exists, err := afero.Exists(fs, "uploads/CH-01_photo.png")
	c.Assert(err, qt.IsNil)
	c.Assert(exists, qt.IsFalse)

	// Removing again or removing foreign references is a no-op.
	c.Assert(store.Remove(ref), qt.IsNil)
	c.Assert(store.Remove("https://cdn.example.com/x.png"), qt.IsNil)
}

func TestSaveKeepsExistingFiles(t *testing.T) {
	c := qt.New(t)
	store, fs := newStore(1 << 20)
	first := append(append([]byte{}, pngHeader...), 1)
	second := append(append([]byte{}, pngHeader...), 2)
	third := append(append([]byte{}, pngHeader...), 3)

	ref1, err := store.Save("X", &upload.Image{Filename: "a.png", Content: bytes.NewReader(first)})
	c.Assert(err, qt.IsNil)
	ref2, err := store.Save("X", &upload.Image{Filename: "a.png", Content: bytes.NewReader(second)})
	c.Assert(err, qt.IsNil)
	ref3, err := store.Save("X", &upload.Image{Filename: "../a.png", Content: bytes.NewReader(third)})
	c.Assert(err, qt.IsNil)

	c.Assert(ref1, qt.Equals, "/static/uploads/X_a.png")
	c.Assert(ref2, qt.Equals, "/static/uploads/X_2_a.png")
	c.Assert(ref3, qt.Equals, "/static/uploads/X_3_a.png")

	stored, err := afero.ReadFile(fs, "uploads/X_a.png")
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.DeepEquals, first)
	stored, err = afero.ReadFile(fs, "uploads/X_2_a.png")
	c.Assert(err, qt.IsNil)
	c.Assert(stored, qt.DeepEquals, second)

	// A freed name is used again.
	c.Assert(store.Remove(ref1), qt.IsNil)
	ref4, err := store.Save("X", &upload.Image{Filename: "a.png", Content: bytes.NewReader(first)})
	c.Assert(err, qt.IsNil)
	c.Assert(ref4, qt.Equals, ref1)
}

func TestSaveRejectsNonImages(t *testing.T) {
	c := qt.New(t)
	store, fs := newStore(1 << 20)

	_, err := store.Save("CH-01", &upload.Image{Filename: "notes.png", Content: strings.NewReader("just some text")})
	c.Assert(errors.Is(err, apperr.ErrValidation), qt.IsTrue)
	c.Assert(apperr.MessageID(err), qt.Equals, code.MsgInvalidImage)

	exists, _ := afero.Exists(fs, "uploads/CH-01_notes.png")
	c.Assert(exists, qt.IsFalse)

	_, err = store.Save("CH-01", &upload.Image{Filename: "empty.png", Content: bytes.NewReader(nil)})
	c.Assert(apperr.MessageID(err), qt.Equals, code.MsgInvalidImage)
}

func TestSaveRejectsLargeFiles(t *testing.T) {
	c := qt.New(t)
	store, fs := newStore(64)
	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 200)...)

	_, err := store.Save("CH-01", &upload.Image{Filename: "big.png", Size: int64(len(content)), Content: bytes.NewReader(content)})
	c.Assert(apperr.MessageID(err), qt.Equals, code.MsgImageTooLarge)

	// Unknown size is caught while copying and leaves nothing behind.
	_, err = store.Save("CH-01", &upload.Image{Filename: "big.png", Content: bytes.NewReader(content)})
	c.Assert(apperr.MessageID(err), qt.Equals, code.MsgImageTooLarge)
	exists, _ := afero.Exists(fs, "uploads/CH-01_big.png")
	c.Assert(exists, qt.IsFalse)
}

func TestPathRejectsTraversal(t *testing.T) {
	c := qt.New(t)
	store, _ := newStore(1 << 20)

	for _, ref := range []string{"/static/uploads/../secret", "/static/uploads/", "/other/x.png", "/static/uploads/a/b.png"} {
		_, ok := store.Path(ref)
		c.Assert(ok, qt.IsFalse, qt.Commentf("%q", ref))
	}
	c.Assert(store.URLPrefix(), qt.Equals, "/static/uploads")
}
