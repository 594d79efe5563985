package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	domain "taskmanager/internal/domain/errors"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	Port        int
	DBStr       string
	MigratePath string
	JWTSecret   string
	CORSOrigins []string
}

const (
	defaultAddr        = "0.0.0.0"
	defaultPort        = 8080
	defaultDBStr       = "postgresql://taskmanager:taskmanager@db:5432/taskmanager?sslmode=disable"
	defaultMigratePath = "migrations"
	// development-only fallback; overridden by JWT_SECRET in any real deployment
	defaultJWTSecret = "dev-secret-change-me"
)

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

var (
	addr        = flag.String("addr", defaultAddr, "server listen address")
	port        = flag.Int("port", defaultPort, "server listen port")
	dbstr       = flag.String("dbstr", defaultDBStr, "database connection string")
	migratePath = flag.String("migratepath", defaultMigratePath, "path to the migrations directory")
	configFile  = flag.String("c", "", "path to a JSON config file")
	parsed      = false
)

// ReadConfig merges configuration sources. Precedence, lowest to highest:
// defaults, JSON config file, environment (with .env autoload), flags.
func ReadConfig() *Config {
	if !parsed {
		flag.Parse()
		parsed = true
	}

	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	cfg := &Config{
		Addr:        defaultAddr,
		Port:        defaultPort,
		DBStr:       defaultDBStr,
		MigratePath: defaultMigratePath,
		JWTSecret:   defaultJWTSecret,
		CORSOrigins: defaultCORSOrigins,
	}

	if jsonConfig := loadJSONConfig(); jsonConfig != nil {
		cfg = jsonConfig
	}

	cfg = applyEnvOverrides(cfg)
	cfg = applyFlagOverrides(cfg)

	if cfg.JWTSecret == defaultJWTSecret {
		log.Println("[WARN] JWT_SECRET is not set, using the development default")
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = defaultCORSOrigins
	}

	return cfg
}

func loadJSONConfig() *Config {
	configPath := *configFile
	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath == "" {
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		fmt.Printf("Warning: %s %s: %v\n", domain.ErrConfigFileReadFailed.Error(), configPath, err)
		return nil
	}

	var jsonConfig Config
	if err := json.Unmarshal(data, &jsonConfig); err != nil {
		fmt.Printf("Warning: %s: %v\n", domain.ErrConfigParseFailed.Error(), err)
		return nil
	}

	log.Println("JSON config loaded from:", configPath)
	return &jsonConfig
}

func applyEnvOverrides(cfg *Config) *Config {
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err != nil {
			fmt.Printf("Warning: %s in PORT: %s\n", domain.ErrConfigInvalidFormat.Error(), port)
		} else if p < 1 || p > 65535 {
			fmt.Printf("Warning: %s - port must be between 1 and 65535: %d\n", domain.ErrConfigInvalidFormat.Error(), p)
		} else {
			cfg.Port = p
		}
	}
	if dbStr := os.Getenv("DB_STR"); dbStr != "" {
		cfg.DBStr = dbStr
	}
	if migratePath := os.Getenv("MIGRATE_PATH"); migratePath != "" {
		cfg.MigratePath = migratePath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	if cfg.DBStr == defaultDBStr {
		dbUser := os.Getenv("DB_USER")
		dbPassword := os.Getenv("DB_PASSWORD")
		dbName := os.Getenv("DB_NAME")
		dbHost := os.Getenv("DB_HOST")
		dbPort := os.Getenv("DB_PORT")
		if dbUser != "" && dbPassword != "" && dbName != "" && dbHost != "" && dbPort != "" {
			cfg.DBStr = fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPassword, dbHost, dbPort, dbName)
		}
	}

	return cfg
}

func applyFlagOverrides(cfg *Config) *Config {
	if *addr != defaultAddr {
		cfg.Addr = *addr
	}
	if *port != defaultPort {
		cfg.Port = *port
	}
	if *migratePath != defaultMigratePath {
		cfg.MigratePath = *migratePath
	}
	if *dbstr != defaultDBStr {
		cfg.DBStr = *dbstr
	}
	return cfg
}
