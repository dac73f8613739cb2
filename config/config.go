package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del bot, construida una vez en main
// y pasada por referencia — nada de estado global mutable.
type Config struct {
	Scanner ScannerConfig `yaml:"scanner"`
	Trading TradingConfig `yaml:"trading"`
	Risk    RiskConfig    `yaml:"risk"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// Credenciales — solo desde variables de entorno, nunca del YAML.
	PrivateKey string `yaml:"-"`
	Wallet     string `yaml:"-"`
	RPCURL     string `yaml:"-"`
}

// ScannerConfig controla el ritmo y alcance del escaneo de mercados.
type ScannerConfig struct {
	ScanIntervalSeconds int `yaml:"scan_interval_seconds"`
	IdleIntervalSeconds int `yaml:"idle_interval_seconds"` // tras varios scans vacíos seguidos
	TopTraders          int `yaml:"top_traders"`
}

// TradingConfig controla la ejecución de trades.
type TradingConfig struct {
	BetSizeUSDC float64 `yaml:"bet_size_usdc"` // notional fijo por trade
	MinAsk      float64 `yaml:"min_ask"`
	MaxAsk      float64 `yaml:"max_ask"`
	MaxSpread   float64 `yaml:"max_spread"`
	Live        bool    `yaml:"live"`        // false = paper (simulado)
	PaperHours  float64 `yaml:"paper_hours"` // 0 = sin auto-halt
}

// RiskConfig contiene los límites de seguridad.
type RiskConfig struct {
	StartingBankroll float64 `yaml:"starting_bankroll"`
	KillSwitchMin    float64 `yaml:"kill_switch_min"`
	MaxPending       int     `yaml:"max_pending"`
	StaleHours       float64 `yaml:"stale_hours"`
}

// APIConfig contiene los base URLs de las APIs.
type APIConfig struct {
	CLOBBase  string `yaml:"clob_base"`
	GammaBase string `yaml:"gamma_base"`
	DataBase  string `yaml:"data_base"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	StateFile  string `yaml:"state_file"`  // JSON del ledger
	TradeLog   string `yaml:"trade_log"`   // CSV append-only
	HistoryDSN string `yaml:"history_dsn"` // SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben el YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	case os.IsNotExist(err):
		// Sin archivo de config se arranca con defaults + env
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if cfg.Trading.Live && cfg.PrivateKey == "" {
		return nil, fmt.Errorf("config.Load: live mode requires POLYMARKET_PRIVATE_KEY")
	}

	return &cfg, nil
}

// ScanInterval devuelve el intervalo de escaneo normal.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.ScanIntervalSeconds) * time.Second
}

// IdleInterval devuelve el intervalo ampliado cuando no hay mercados.
func (c *Config) IdleInterval() time.Duration {
	return time.Duration(c.Scanner.IdleIntervalSeconds) * time.Second
}

// StaleWindow devuelve la ventana tras la que un pending se fuerza a loss.
func (c *Config) StaleWindow() time.Duration {
	return time.Duration(c.Risk.StaleHours * float64(time.Hour))
}

// PaperWindow devuelve la duración de la ventana paper (0 = ilimitada).
func (c *Config) PaperWindow() time.Duration {
	return time.Duration(c.Trading.PaperHours * float64(time.Hour))
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	cfg.PrivateKey = os.Getenv("POLYMARKET_PRIVATE_KEY")
	cfg.Wallet = os.Getenv("POLYMARKET_WALLET")
	cfg.RPCURL = os.Getenv("POLYGON_RPC_URL")
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Scanner.ScanIntervalSeconds <= 0 {
		cfg.Scanner.ScanIntervalSeconds = 300
	}
	if cfg.Scanner.IdleIntervalSeconds <= 0 {
		cfg.Scanner.IdleIntervalSeconds = 600
	}
	if cfg.Scanner.TopTraders <= 0 {
		cfg.Scanner.TopTraders = 10
	}
	if cfg.Trading.BetSizeUSDC <= 0 {
		cfg.Trading.BetSizeUSDC = 5.00
	}
	if cfg.Trading.MinAsk <= 0 {
		cfg.Trading.MinAsk = 0.10
	}
	if cfg.Trading.MaxAsk <= 0 {
		cfg.Trading.MaxAsk = 0.95
	}
	if cfg.Trading.MaxSpread <= 0 {
		cfg.Trading.MaxSpread = 0.10
	}
	if cfg.Trading.PaperHours < 0 {
		cfg.Trading.PaperHours = 0
	}
	if cfg.Risk.StartingBankroll <= 0 {
		cfg.Risk.StartingBankroll = 1000.00
	}
	if cfg.Risk.KillSwitchMin <= 0 {
		cfg.Risk.KillSwitchMin = 100.00
	}
	if cfg.Risk.MaxPending <= 0 {
		cfg.Risk.MaxPending = 50
	}
	if cfg.Risk.StaleHours <= 0 {
		cfg.Risk.StaleHours = 72
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data-api.polymarket.com"
	}
	if cfg.Storage.StateFile == "" {
		cfg.Storage.StateFile = "data/weather_state.json"
	}
	if cfg.Storage.TradeLog == "" {
		cfg.Storage.TradeLog = "data/weather_trades.csv"
	}
	if cfg.Storage.HistoryDSN == "" {
		cfg.Storage.HistoryDSN = "data/weatherbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = "https://polygon-rpc.com"
	}
}
