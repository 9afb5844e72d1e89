package config

import (
	"fmt"
	"os"
	"strconv"
)

func applyEnv(cfg *Config) error {
	fields := map[string]*string{
		"GDP_SOURCE_URL":          &cfg.SourceURL,
		"GDP_TABLE_SELECTOR":      &cfg.TableSelector,
		"GDP_HEADER_LABEL":        &cfg.HeaderLabel,
		"CSV_PATH":                &cfg.CSVPath,
		"PROGRESS_LOG_PATH":       &cfg.LogPath,
		"SQLITE_PATH":             &cfg.SQLitePath,
		"TABLE_NAME":              &cfg.TableName,
		"HTTP_TIMEOUT":            &cfg.HTTPTimeout,
		"SQL_DRIVER":              &cfg.ServerDriver,
		"SQL_CONNECTION_STRING":   &cfg.SQLConnString,
		"MONGO_CONNECTION_STRING": &cfg.MongoConnString,
		"MONGO_DATABASE":          &cfg.MongoDatabase,
	}
	for key, field := range fields {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("GDP_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GDP_THRESHOLD: %w", err)
		}
		cfg.Threshold = f
	}
	return nil
}
