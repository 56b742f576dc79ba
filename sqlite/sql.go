package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hoshinonyaruko/snake-duel/snake"
	_ "github.com/mattn/go-sqlite3"
)

const createHighscoresTableSQL = `
CREATE TABLE IF NOT EXISTS Highscores (
    ID INTEGER PRIMARY KEY CHECK (ID = 1),
    Score INTEGER NOT NULL,
    UpdatedAt TIMESTAMP
);
`

func executeSQL(db *sql.DB, sqlStatement string) error {
	if _, err := db.Exec(sqlStatement); err != nil {
		return fmt.Errorf("executing SQL statement %q: %w", sqlStatement, err)
	}
	return nil
}

func InitializeDatabase(db *sql.DB) error {
	return executeSQL(db, createHighscoresTableSQL)
}

// HighscoreStore keeps the highscore in a single-row SQLite table.
type HighscoreStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and prepares the schema.
func Open(path string) (*HighscoreStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return &HighscoreStore{db: db}, nil
}

// Load returns 0 when no highscore has been written yet.
func (s *HighscoreStore) Load() (int, error) {
	var score int
	err := s.db.QueryRow("SELECT Score FROM Highscores WHERE ID = 1").Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return score, nil
}

func (s *HighscoreStore) Save(score int) error {
	// 开启事务
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO Highscores (ID, Score, UpdatedAt) VALUES (1, ?, ?)", score, time.Now().Unix())
	if err != nil {
		tx.Rollback()
		return err
	}

	// 提交事务
	return tx.Commit()
}

func (s *HighscoreStore) Close() error {
	return s.db.Close()
}

// OpenHighscoreStore picks the highscore backend named by kind: "sqlite" uses
// the database at dbPath, anything else the text file at filePath.
func OpenHighscoreStore(kind, dbPath, filePath string) (snake.HighscoreStore, error) {
	if kind == "sqlite" {
		store, err := Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open highscore database %s: %w", dbPath, err)
		}
		return store, nil
	}
	return snake.FileStore{Path: filePath}, nil
}
