package media

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Box is a detection bounding box in pixel coordinates.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// LoadImage decodes a frame image from disk (JPEG or PNG).
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// PrepareFace crops the box out of the frame, resizes it to size x size,
// converts to grayscale, and normalizes pixel values to [0,1], which is
// the input layout every face classifier expects.
func PrepareFace(img image.Image, box Box, size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("prepare face: invalid size %d", size)
	}
	crop, err := cropBox(img, box)
	if err != nil {
		return nil, err
	}

	bounds := crop.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	pixels := make([]float64, size*size)
	for y := 0; y < size; y++ {
		srcY := bounds.Min.Y + y*srcH/size
		for x := 0; x < size; x++ {
			srcX := bounds.Min.X + x*srcW/size
			r, g, b, _ := crop.At(srcX, srcY).RGBA()
			// ITU-R BT.601 luma over 16-bit channel values.
			luma := (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000
			pixels[y*size+x] = luma / 65535
		}
	}
	return pixels, nil
}

func cropBox(img image.Image, box Box) (image.Image, error) {
	bounds := img.Bounds()
	rect := image.Rect(box.X, box.Y, box.X+box.W, box.Y+box.H).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("crop box %+v outside image bounds %v", box, bounds)
	}

	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if sub, ok := img.(subImager); ok {
		return sub.SubImage(rect), nil
	}

	out := image.NewRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out, nil
}
