package testsupport

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFrame writes a small solid-color PNG frame into dir and returns its path.
func WriteFrame(t testing.TB, dir, name string, c color.Color) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir frames dir: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create frame %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode frame %s: %v", path, err)
	}
	return path
}

// WriteFrames writes count gray PNG frames named frame_000.png onward.
func WriteFrames(t testing.TB, dir string, count int) []string {
	t.Helper()
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name := frameName(i)
		paths = append(paths, WriteFrame(t, dir, name, color.Gray{Y: 128}))
	}
	return paths
}

func frameName(i int) string {
	digits := []byte{'0' + byte(i/100%10), '0' + byte(i/10%10), '0' + byte(i%10)}
	return "frame_" + string(digits) + ".png"
}
