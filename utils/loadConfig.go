package utils

import (
	"encoding/json"
	"os"

	"railserver/models"
)

// LoadConfig loads the configuration from config.json
func LoadConfig(filename string) (models.Config, error) {
	config := models.DefaultConfig()
	configFile, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer configFile.Close()

	jsonParser := json.NewDecoder(configFile)
	if err := jsonParser.Decode(&config); err != nil {
		return models.DefaultConfig(), err
	}

	// 欠けている項目はデフォルト値で埋める
	if config.ServerPort == "" {
		config.ServerPort = models.DefaultConfig().ServerPort
	}
	if config.GameIdleHours <= 0 {
		config.GameIdleHours = models.DefaultConfig().GameIdleHours
	}
	return config, nil
}
