package main

import (
	"log"

	"github.com/hoshinonyaruko/snake-duel/config"
	"github.com/hoshinonyaruko/snake-duel/memimg"
	"github.com/hoshinonyaruko/snake-duel/render"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/sqlite"
	"github.com/hoshinonyaruko/snake-duel/window"
)

func main() {
	config.LoadConfig("./config.json")
	blockSize := config.GetConfigValue("blocksize").(int)

	sprites := memimg.NewSprites(blockSize)
	if err := sprites.Load(config.GetConfigValue("spritedir").(string)); err != nil {
		log.Printf("no sprites loaded, using plain colours: %v", err)
	}

	store, err := sqlite.OpenHighscoreStore(
		config.GetConfigValue("highscorestore").(string),
		config.GetConfigValue("dbpath").(string),
		config.GetConfigValue("highscorefile").(string),
	)
	if err != nil {
		log.Fatalf("Failed to open highscore store: %s", err)
	}
	game := snake.NewGame(store, snake.LogSound{}, nil)

	if err := window.New(game, render.New(blockSize, sprites)).Run(); err != nil {
		log.Fatal(err)
	}
}
