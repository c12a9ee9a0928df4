package upload

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// FormImage returns the image posted in field, or nil when the request is not
// multipart or carries no file there. The caller closes the image.
func FormImage(r *http.Request, field string) (*Image, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, nil
	}

	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Filename == "" || fh.Size == 0 {
		_ = f.Close()
		return nil, nil
	}
	return &Image{Filename: fh.Filename, Size: fh.Size, Content: f}, nil
}

func (img *Image) Close() error {
	if img == nil {
		return nil
	}
	if c, ok := img.Content.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
