package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const jpegQuality = 95

// Encode write img as png or jpeg, chosen by ext
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "", "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	default:
		return fmt.Errorf("image ext %s not support", ext)
	}
}

// Save encode img to path, the format follows the path extension.
// The file appears at path only once fully written.
func Save(path string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := Encode(tmp, img, filepath.Ext(path)); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s err=%w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
