package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var ErrEmptyImage = errors.New("empty image data")

// DecodeImage decode one base64 encoded image returned by sd
func DecodeImage(data string) (image.Image, error) {
	if data == "" {
		return nil, ErrEmptyImage
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("base64 decode err=%w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("image decode err=%w", err)
	}
	return img, nil
}

// Decoder lazily decode a batch of base64 images, one per Next call.
// It stops at the first failure, see Err.
type Decoder struct {
	images []string
	index  int
	cur    image.Image
	err    error
}

func NewDecoder(images []string) *Decoder {
	return &Decoder{images: images}
}

func (d *Decoder) Next() bool {
	if d.err != nil || d.index >= len(d.images) {
		d.cur = nil
		return false
	}
	img, err := DecodeImage(d.images[d.index])
	if err != nil {
		d.err = fmt.Errorf("image %d: %w", d.index, err)
		d.cur = nil
		return false
	}
	d.index++
	d.cur = img
	return true
}

func (d *Decoder) Image() image.Image {
	return d.cur
}

func (d *Decoder) Err() error {
	return d.err
}

// Count images decoded so far
func (d *Decoder) Count() int {
	return d.index
}
