package snake

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

// HighscoreStore persists the best score ever reached.
type HighscoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// FileStore keeps the highscore as a single integer in a text file.
type FileStore struct {
	Path string
}

// Load returns 0 without error when the file does not exist yet.
func (f FileStore) Load() (int, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse highscore file %s: %w", f.Path, err)
	}
	return score, nil
}

func (f FileStore) Save(score int) error {
	return os.WriteFile(f.Path, []byte(strconv.Itoa(score)), 0644)
}

// Highscores tracks the process-wide best score and writes it through to the
// store whenever it is beaten.
type Highscores struct {
	Best  int
	store HighscoreStore
}

// LoadHighscores reads the stored highscore. Unreadable stores start at 0.
func LoadHighscores(store HighscoreStore) *Highscores {
	h := &Highscores{store: store}
	if store == nil {
		return h
	}
	best, err := store.Load()
	if err != nil {
		log.Printf("load highscore failed, starting at 0: %v", err)
		return h
	}
	h.Best = best
	return h
}

// Record persists score if it beats the current best.
func (h *Highscores) Record(score int) {
	if score <= h.Best {
		return
	}
	h.Best = score
	if h.store == nil {
		return
	}
	if err := h.store.Save(score); err != nil {
		log.Printf("save highscore %d failed: %v", score, err)
	}
}
