package main

import (
	"context"
	"log"
	"os"

	"github.com/hoshinonyaruko/snake-duel/api"
	"github.com/hoshinonyaruko/snake-duel/config"
	"github.com/hoshinonyaruko/snake-duel/memimg"
	"github.com/hoshinonyaruko/snake-duel/render"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/sqlite"
)

func main() {
	// Initialize the configuration
	config.LoadConfig("./config.json")
	spriteDir := config.GetConfigValue("spritedir").(string)
	outputDir := config.GetConfigValue("outputdir").(string)
	EnsureFoldersExist(spriteDir, outputDir)

	// 获取blockSize
	blockSize := config.GetConfigValue("blocksize").(int)
	// 载入贴图到内存
	sprites := memimg.NewSprites(blockSize)
	if err := sprites.Load(spriteDir); err != nil {
		log.Printf("Failed to load sprites: %v", err)
	}

	ctx := context.Background()
	// 检测并热更新到内存 加速绘图
	go func() {
		if err := sprites.Watch(ctx, spriteDir); err != nil {
			log.Printf("sprite watcher stopped: %v", err)
		}
	}()

	hub := api.NewHub()
	game := snake.NewGame(openHighscoreStore(), snake.Sounds{snake.LogSound{}, hub}, nil)
	runner := api.NewRunner(game, hub.Publish)
	go runner.Run(ctx)

	server := &api.Server{
		Runner:    runner,
		Hub:       hub,
		Renderer:  render.New(blockSize, sprites),
		OutputDir: outputDir,
		SelfPath:  config.GetConfigValue("selfpath").(string),
	}
	// 从配置单例读取端口 监听
	if err := server.Router().Run(":" + config.GetConfigValue("port").(string)); err != nil {
		log.Fatal(err)
	}
}

func openHighscoreStore() snake.HighscoreStore {
	store, err := sqlite.OpenHighscoreStore(
		config.GetConfigValue("highscorestore").(string),
		config.GetConfigValue("dbpath").(string),
		config.GetConfigValue("highscorefile").(string),
	)
	if err != nil {
		log.Fatalf("Failed to open highscore store: %s", err)
	}
	return store
}

// EnsureFoldersExist 检查并创建必需的文件夹
func EnsureFoldersExist(folders ...string) {
	for _, folder := range folders {
		if _, err := os.Stat(folder); os.IsNotExist(err) {
			// 文件夹不存在，尝试创建它
			err := os.MkdirAll(folder, 0755)
			if err != nil {
				// 如果创建失败，则记录错误并可能退出程序
				log.Fatalf("Failed to create %s directory: %s", folder, err)
			}
			log.Printf("Created %s directory", folder)
		}
	}
}
