package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	StoreAPIURL string // リモートストアAPIのベースURL

	RedisAddr     string // Redisアドレス（localhost:6379）
	RedisPassword string // Redisパスワード（空でも可）
	RedisDB       int    // Redis DB番号

	CartDBPath string // 匿名カート用SQLiteファイルのパス

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数
func Load() (Config, error) {
	// REDIS_DB未指定は0番を使う
	redisDB, err := atoiOrZero("REDIS_DB")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		StoreAPIURL: os.Getenv("STORE_API_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		CartDBPath: os.Getenv("CART_DB_PATH"),

		GoEnv: os.Getenv("GO_ENV"),
		FEURL: os.Getenv("FE_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.StoreAPIURL == "" {
		return Config{}, fmt.Errorf("STORE_API_URL is required")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required")
	}
	if cfg.CartDBPath == "" {
		return Config{}, fmt.Errorf("CART_DB_PATH is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.FEURL == "" {
		return Config{}, fmt.Errorf("FE_URL is required")
	}

	return cfg, nil
}

func atoiOrZero(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
