// 物品和障碍物贴图的内存缓存
package memimg

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fsnotify/fsnotify"
)

// Sprites holds images keyed by file name without extension, each scaled to
// one tile.
type Sprites struct {
	blockSize int
	mu        sync.RWMutex
	images    map[string]image.Image
}

func NewSprites(blockSize int) *Sprites {
	return &Sprites{
		blockSize: blockSize,
		images:    make(map[string]image.Image),
	}
}

// spriteName 去掉扩展名作为键，例如 red_food.png -> red_food
func spriteName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// LoadImage decodes the image stored at path.
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Load reads every image in directory into the cache.
func (s *Sprites) Load(directory string) error {
	return filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isImage(path) {
			return nil
		}
		return s.loadFile(path)
	})
}

func (s *Sprites) loadFile(path string) error {
	img, err := LoadImage(path)
	if err != nil {
		return err
	}
	// 缩放到格子大小
	scaled := imaging.Resize(img, s.blockSize, s.blockSize, imaging.Lanczos)
	s.mu.Lock()
	s.images[spriteName(path)] = scaled
	s.mu.Unlock()
	return nil
}

// Watch reloads sprites when files in directory change, until ctx is done.
func (s *Sprites) Watch(ctx context.Context, directory string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(directory); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			s.handle(event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println("sprite watcher error:", err)
		}
	}
}

func (s *Sprites) handle(event fsnotify.Event) {
	if !isImage(event.Name) {
		return
	}
	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		if err := s.loadFile(event.Name); err != nil {
			// 文件可能还没写完，下一个写事件会再次加载
			log.Printf("reload sprite %s: %v", event.Name, err)
		}
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		s.mu.Lock()
		delete(s.images, spriteName(event.Name))
		s.mu.Unlock()
	}
}

// Sprite returns the cached image for name, if any.
func (s *Sprites) Sprite(name string) (image.Image, bool) {
	s.mu.RLock()
	img, exists := s.images[name]
	s.mu.RUnlock()
	return img, exists
}
