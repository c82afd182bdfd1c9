package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

// Поддерживаемые хранилища балансов
const (
	BalanceBackendNone     = "none"
	BalanceBackendSheets   = "sheets"
	BalanceBackendPostgres = "postgres"
)

type Arguments struct {
	ListenAddr      string        `env:"SERVER_ADDRESS" envDefault:""`
	Port            string        `env:"PORT" envDefault:"5000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	BotToken        string        `env:"BOT_TOKEN" envDefault:""`
	AdminID         string        `env:"ADMIN_ID" envDefault:""`
	APIURL          string        `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	WebhookSecret   string        `env:"WEBHOOK_SECRET" envDefault:""`
	CurrencySign    string        `env:"CURRENCY_SIGN" envDefault:"₽"`
	BalanceBackend  string        `env:"BALANCE_BACKEND" envDefault:""`
	CredentialsFile string        `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	SpreadsheetID   string        `env:"SPREADSHEET_ID" envDefault:""`
	SheetName       string        `env:"SHEET_NAME" envDefault:"Balances"`
	DatabaseDSN     string        `env:"DATABASE_DSN" envDefault:""`
}

// ServerConfig модель настроек входящего HTTP сервера
type ServerConfig struct {
	ListenAddr    string
	LogLevel      string
	WebhookSecret string
}

// TelegramConfig модель настроек работы с Telegram Bot API
type TelegramConfig struct {
	APIURL         string
	BotToken       string
	AdminID        string
	RequestTimeout time.Duration
	CurrencySign   string
}

// BalanceConfig модель настроек хранилища балансов пользователей
type BalanceConfig struct {
	Backend         string
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
	DatabaseDSN     string
}

// Config модель настроек сервиса
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Balance  BalanceConfig
}

// NewConfig читает настройки из окружения и аргументов командной строки
func NewConfig() Config {
	cfg, err := ParseConfig(os.Args[1:])
	if err != nil {
		panic(fmt.Sprintf("Failed to parse config: %s", err.Error()))
	}
	return cfg
}

// ParseConfig - переменные окружения задают значения по умолчанию, флаги их переопределяют
func ParseConfig(arguments []string) (Config, error) {
	var args Arguments
	if err := env.Parse(&args); err != nil {
		return Config{}, fmt.Errorf("failed to parse enviroment var: %w", err)
	}

	flags := pflag.NewFlagSet("payrelay", pflag.ContinueOnError)
	var (
		server   = flags.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		port     = flags.StringP("port", "p", args.Port, "Server listen port, used when address is empty.")
		logLevel = flags.StringP("log_level", "l", args.LogLevel, "Log level.")
		token    = flags.StringP("token", "t", args.BotToken, "Telegram bot token.")
		admin    = flags.StringP("admin", "i", args.AdminID, "Telegram chat id of administrator.")
		apiURL   = flags.StringP("api", "u", args.APIURL, "Telegram Bot API base URL.")
		timeout  = flags.DurationP("timeout", "T", args.RequestTimeout, "Timeout of outbound requests.")
		secret   = flags.StringP("secret", "s", args.WebhookSecret, "Webhook secret token.")
		backend  = flags.StringP("balance", "b", args.BalanceBackend, "Balance storage: none, sheets or postgres.")
		creds    = flags.StringP("credentials", "c", args.CredentialsFile, "Google service account credentials file.")
		DSN      = flags.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
	)
	if err := flags.Parse(arguments); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	listenAddr := *server
	if listenAddr == "" {
		listenAddr = ":" + *port
	}
	if *backend == "" {
		*backend = BalanceBackendNone
	}

	return Config{
		Server: ServerConfig{
			ListenAddr:    listenAddr,
			LogLevel:      *logLevel,
			WebhookSecret: *secret,
		},
		Telegram: TelegramConfig{
			APIURL:         *apiURL,
			BotToken:       *token,
			AdminID:        *admin,
			RequestTimeout: *timeout,
			CurrencySign:   args.CurrencySign,
		},
		Balance: BalanceConfig{
			Backend:         *backend,
			CredentialsFile: *creds,
			SpreadsheetID:   args.SpreadsheetID,
			SheetName:       args.SheetName,
			DatabaseDSN:     *DSN,
		},
	}, nil
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: ":5000",
			LogLevel:   "info",
		},
		Telegram: TelegramConfig{
			APIURL:         "https://api.telegram.org",
			RequestTimeout: 10 * time.Second,
			CurrencySign:   "₽",
		},
		Balance: BalanceConfig{
			Backend:         BalanceBackendNone,
			CredentialsFile: "credentials.json",
			SheetName:       "Balances",
		},
	}
}
