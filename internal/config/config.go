package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort    int    `yaml:"api_port" env:"API_PORT" env-default:"8080"`
	ApiHost    string `yaml:"api_host" env:"API_HOST" env-default:"localhost"`
	Storage    string `yaml:"storage" env:"STORAGE" env-default:"mongo" env-description:"Storage driver" env-choices:"mongo,postgres"`
	UploadsDir string `yaml:"uploads_dir" env:"UPLOADS_DIR" env-default:"./uploads"`
	HTTP       `yaml:"http"`
	Mongo      `yaml:"mongo"`
	Postgres   `yaml:"postgres"`
	JWT        `yaml:"jwt"`
	CORS       `yaml:"cors"`
	Export     `yaml:"export"`
	Dashboard  `yaml:"dashboard"`
}

type HTTP struct {
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"5s"`
}

type Mongo struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"expense_tracker"`
}

type Postgres struct {
	Host    string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User    string `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Pass    string `yaml:"pass" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Db      string `yaml:"db" env:"POSTGRES_DB" env-default:"expense_tracker"`
	SSLMode string `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
}

type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"1h"`
}

type CORS struct {
	AllowedOrigin string `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN" env-default:"http://localhost:5173"`
}

type Export struct {
	Dir string `yaml:"dir" env:"EXPORT_DIR"`
}

type Dashboard struct {
	RecentLimit int `yaml:"recent_limit" env:"DASHBOARD_RECENT_LIMIT" env-default:"10"`
}

// URL builds a lib/pq connection string.
func (p Postgres) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User,
		p.Pass,
		p.Host,
		p.Port,
		p.Db,
		p.SSLMode,
	)
}

func MustLoad() *Config {
	path := fetchConfigPath()

	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load reads the YAML file at path and applies environment overrides.
// An empty path reads the environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
