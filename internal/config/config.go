package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config 伺服器設定，全部來自環境變數（可由 .env 補上）
type Config struct {
	// Server Settings
	Port   string `env:"PORT,default=8080"`
	Host   string `env:"HOST,default=0.0.0.0"`
	AppEnv string `env:"APP_ENV,default=development"`

	DatabaseURL   string `env:"DATABASE_URL,required"`
	RedisAddr     string `env:"REDIS_ADDR,required"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	// JWT Settings
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL,default=24h"`

	UploadDir      string        `env:"UPLOAD_DIR,default=public/uploads"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES,default=5242880"`
	CacheTTL       time.Duration `env:"CACHE_TTL,default=30s"`
	WorkerCount    int           `env:"WORKER_COUNT,default=1"`

	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC,default=marketplace-events"`

	AuthRateLimit           float64 `env:"AUTH_RATE_LIMIT,default=5"`
	RequireAvailableProduct bool    `env:"REQUIRE_AVAILABLE_PRODUCT,default=false"`
	LogLevel                string  `env:"LOG_LEVEL,default=info"`
}

// Addr 回傳 echo.Start 使用的監聽位址
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

var (
	dotenvLoad = godotenv.Load
	decodeEnv  = envdecode.Decode
)

// Load 先讀取 .env（不存在則略過），再解析環境變數
func Load() (*Config, error) {
	if err := dotenvLoad(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg := &Config{}
	if err := decodeEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
