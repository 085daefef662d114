package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const DefaultConfigFile = "./config/config.yaml"

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p Postgres) ConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

type Nats struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	Stream         string `mapstructure:"stream"`
	QuerySubject   string `mapstructure:"querySubject"`
	AnswersSubject string `mapstructure:"answersSubject"`
	Workers        int    `mapstructure:"workers"`
	QueueSize      int    `mapstructure:"queueSize"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

type Server struct {
	Port         int      `mapstructure:"port"`
	Host         string   `mapstructure:"host"`
	AllowOrigins []string `mapstructure:"allowOrigins"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Menu selects where the menu table is read from: "csv", "postgres" or "sqlite".
type Menu struct {
	Source     string `mapstructure:"source"`
	Path       string `mapstructure:"path"`
	SkipHeader bool   `mapstructure:"skipHeader"`
}

type Font struct {
	Family string `mapstructure:"family"`
	Path   string `mapstructure:"path"`
}

type Card struct {
	Output     string  `mapstructure:"output"`
	Title      string  `mapstructure:"title"`
	Fonts      []Font  `mapstructure:"fonts"`
	PageBreakY float64 `mapstructure:"pageBreakY"`
}

type History struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
	Session string `mapstructure:"session"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

type Config struct {
	Menu     Menu     `mapstructure:"menu"`
	Card     Card     `mapstructure:"card"`
	Postgres Postgres `mapstructure:"postgres"`
	SQLite   SQLite   `mapstructure:"sqlite"`
	Nats     Nats     `mapstructure:"nats"`
	Server   Server   `mapstructure:"server"`
	History  History  `mapstructure:"history"`
	Log      Log      `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("menu.source", "csv")
	v.SetDefault("menu.path", "./data/menu.csv")
	v.SetDefault("menu.skipHeader", true)

	v.SetDefault("card.output", "menu_card.pdf")
	v.SetDefault("card.title", "Restaurant Menu")
	v.SetDefault("card.pageBreakY", 250)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("sqlite.path", "menu.db")

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.host", "localhost")
	v.SetDefault("nats.port", "4222")
	v.SetDefault("nats.stream", "MENU")
	v.SetDefault("nats.querySubject", "menu.query")
	v.SetDefault("nats.answersSubject", "menu.answers")
	v.SetDefault("nats.workers", 1)
	v.SetDefault("nats.queueSize", 100)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowOrigins", []string{"*"})

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "chat_history.db")
	v.SetDefault("history.session", "menu-assistant")

	v.SetDefault("log.level", "info")
}

// Load reads the YAML file at path. Every key can be overridden from the environment,
// with dots replaced by underscores (SERVER_PORT, MENU_PATH).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

// LoadConfig loads the file named by CONFIG_FILE, or ./config/config.yaml, and exits on failure.
func LoadConfig() *Config {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}

	config, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}

	return config
}
