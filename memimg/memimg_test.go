package memimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func writePNG(t *testing.T, path string, size int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadScalesToBlockSize(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "poison.png"), 64)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644)

	sprites := NewSprites(20)
	if err := sprites.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}

	img, ok := sprites.Sprite("poison")
	if !ok {
		t.Fatal("Expected poison sprite to be cached")
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("Expected 20x20 sprite, got %v", b)
	}
	if _, ok := sprites.Sprite("notes"); ok {
		t.Error("Expected non-image files to be skipped")
	}
}

func TestHandleRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obstacle.png")
	writePNG(t, path, 10)

	sprites := NewSprites(25)
	sprites.handle(fsnotify.Event{Name: path, Op: fsnotify.Create})
	if _, ok := sprites.Sprite("obstacle"); !ok {
		t.Fatal("Expected create event to load the sprite")
	}

	sprites.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	if _, ok := sprites.Sprite("obstacle"); ok {
		t.Error("Expected remove event to drop the sprite")
	}
}
