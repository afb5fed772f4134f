package media_test

import (
	"image"
	"image/color"
	"testing"

	"moviesphere/internal/media"
	"moviesphere/internal/testsupport"
)

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFrame(t, dir, "frame.png", color.Gray{Y: 200})
	img, err := media.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}

	if _, err := media.LoadImage(dir + "/missing.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPrepareFaceGeometry(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	// Left half black, right half white.
	for y := 0; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	pixels, err := media.PrepareFace(img, media.Box{X: 0, Y: 0, W: 40, H: 40}, 10)
	if err != nil {
		t.Fatalf("PrepareFace failed: %v", err)
	}
	if len(pixels) != 100 {
		t.Fatalf("expected 100 pixels, got %d", len(pixels))
	}
	if pixels[0] > 0.05 {
		t.Fatalf("left edge should be dark, got %v", pixels[0])
	}
	if pixels[9] < 0.95 {
		t.Fatalf("right edge should be bright, got %v", pixels[9])
	}
}

func TestPrepareFaceClampsBox(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 30, 30))
	// Box extends past the image; the overlap is used.
	if _, err := media.PrepareFace(img, media.Box{X: 20, Y: 20, W: 50, H: 50}, 8); err != nil {
		t.Fatalf("PrepareFace with clamped box failed: %v", err)
	}
	// Fully outside box fails.
	if _, err := media.PrepareFace(img, media.Box{X: 100, Y: 100, W: 10, H: 10}, 8); err == nil {
		t.Fatal("expected error for box outside bounds")
	}
}
