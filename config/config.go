package config

import (
	"encoding/json"
	"os"
	"sync"
)

// AppConfig holds the structure of the configuration
type AppConfig struct {
	SelfPath       string `json:"selfpath"`
	Port           string `json:"port"`
	Blocksize      int    `json:"blocksize"`      // 每个格子渲染的像素大小
	HighscoreStore string `json:"highscorestore"` // "file" 或 "sqlite"
	HighscoreFile  string `json:"highscorefile"`
	DBPath         string `json:"dbpath"`
	SpriteDir      string `json:"spritedir"`
	OutputDir      string `json:"outputdir"`
}

var (
	instance *AppConfig
	once     sync.Once
)

func defaults() *AppConfig {
	return &AppConfig{
		SelfPath:       "127.0.0.1:38870", // Default value
		Port:           "38870",           // Default value
		Blocksize:      25,
		HighscoreStore: "file",
		HighscoreFile:  "highscore.txt",
		DBPath:         "game.db",
		SpriteDir:      "sprites",
		OutputDir:      "output",
	}
}

// LoadConfig initializes and returns the instance of AppConfig
func LoadConfig(filePath string) *AppConfig {
	once.Do(func() {
		instance = defaults()
		// Load the config file if it exists, otherwise create one
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			saveConfig(filePath)
		} else {
			loadConfig(filePath)
		}
	})
	return instance
}

// loadConfig loads the settings from the file
func loadConfig(filePath string) {
	file, err := os.Open(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(instance); err != nil {
		panic(err)
	}
}

// saveConfig saves the current settings to the file
func saveConfig(filePath string) {
	file, err := os.Create(filePath)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(instance); err != nil {
		panic(err)
	}
}

// GetConfigValue returns the value of the configuration by key
func GetConfigValue(key string) interface{} {
	switch key {
	case "selfpath":
		return instance.SelfPath
	case "port":
		return instance.Port
	case "blocksize":
		return instance.Blocksize
	case "highscorestore":
		return instance.HighscoreStore
	case "highscorefile":
		return instance.HighscoreFile
	case "dbpath":
		return instance.DBPath
	case "spritedir":
		return instance.SpriteDir
	case "outputdir":
		return instance.OutputDir
	default:
		return ""
	}
}
