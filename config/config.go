package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/HCTop/LoteriaProbabilidad/internal/backtest"
	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	"github.com/HCTop/LoteriaProbabilidad/internal/prize"
	"github.com/HCTop/LoteriaProbabilidad/internal/selector"
)

// Config es la configuración completa del simulador.
type Config struct {
	Game     string         `yaml:"game"` // clave del juego por defecto
	Backtest BacktestConfig `yaml:"backtest"`
	Methods  MethodsConfig  `yaml:"methods"`
	Prize    PrizeConfig    `yaml:"prize"`
	Ingest   IngestConfig   `yaml:"ingest"`
	History  HistoryConfig  `yaml:"history"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// BacktestConfig controla la evaluación walk-forward.
type BacktestConfig struct {
	Evaluations int   `yaml:"evaluations"` // últimos N sorteos
	Reps        int   `yaml:"reps"`
	Workers     int   `yaml:"workers"`
	Seed        int64 `yaml:"seed"`
}

// MethodsConfig parametriza los métodos de selección.
type MethodsConfig struct {
	HotWindow    int          `yaml:"hot_window"`
	MinHistory   int          `yaml:"min_history"`
	Blend        BlendConfig  `yaml:"blend"`
	Momentum     []WindowSpec `yaml:"momentum_windows"`
	MomentumMix  MixConfig    `yaml:"momentum_mix"`
	AccelShort   int          `yaml:"accel_short"`
	AccelLong    int          `yaml:"accel_long"`
	EnsembleSize int          `yaml:"ensemble_size"`
	ConsensusSet int          `yaml:"consensus_set"`
	ConsensusMin int          `yaml:"consensus_min"`
}

// BlendConfig son los pesos del método mixto; deben sumar 1.
type BlendConfig struct {
	Frequency float64 `yaml:"frequency"`
	Recent    float64 `yaml:"recent"`
	Overdue   float64 `yaml:"overdue"`
}

// WindowSpec es una ventana ponderada del momentum multi-ventana.
type WindowSpec struct {
	Size   int     `yaml:"size"`
	Weight float64 `yaml:"weight"`
}

// MixConfig reparte el score entre momentum y aceleración.
type MixConfig struct {
	Momentum     float64 `yaml:"momentum"`
	Acceleration float64 `yaml:"acceleration"`
}

// PrizeConfig controla la simulación de premios.
type PrizeConfig struct {
	Tickets    int          `yaml:"tickets"`    // boletos por sorteo
	Candidates int          `yaml:"candidates"` // pool de candidatos
	MinHistory int          `yaml:"min_history"`
	Payouts    []TierConfig `yaml:"payouts"` // vacío = tabla de La Primitiva
}

// TierConfig es una categoría de premio con su valor fijo.
type TierConfig struct {
	Category  string  `yaml:"category"`
	Hits      int     `yaml:"hits"`
	Reintegro bool    `yaml:"reintegro"`
	Value     float64 `yaml:"value"`
	Jackpot   bool    `yaml:"jackpot"`
}

// IngestConfig lista las hojas públicas de cada juego, de más nueva a
// más vieja.
type IngestConfig struct {
	URLs map[string][]string `yaml:"urls"`
}

// HistoryConfig controla los ficheros CSV del histórico.
type HistoryConfig struct {
	Dir string `yaml:"dir"` // directorio con <juego>.csv
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Default devuelve la configuración de referencia sin leer ningún
// fichero, para arrancar sin config.yaml.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LOTERIA_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	def := selector.DefaultParams()
	bt := backtest.DefaultConfig()
	pz := prize.DefaultParams()

	if cfg.Game == "" {
		cfg.Game = domain.Primitiva.Key
	}
	if cfg.Backtest.Evaluations <= 0 {
		cfg.Backtest.Evaluations = bt.Evaluations
	}
	if cfg.Backtest.Reps <= 0 {
		cfg.Backtest.Reps = bt.Reps
	}
	if cfg.Backtest.Workers <= 0 {
		cfg.Backtest.Workers = bt.Workers
	}
	if cfg.Backtest.Seed == 0 {
		cfg.Backtest.Seed = bt.Seed
	}
	if cfg.Methods.HotWindow <= 0 {
		cfg.Methods.HotWindow = def.HotWindow
	}
	if cfg.Methods.MinHistory <= 0 {
		cfg.Methods.MinHistory = def.MinHistory
	}
	if cfg.Methods.Blend == (BlendConfig{}) {
		cfg.Methods.Blend = BlendConfig{
			Frequency: def.Blend.Frequency,
			Recent:    def.Blend.Recent,
			Overdue:   def.Blend.Overdue,
		}
	}
	if len(cfg.Methods.Momentum) == 0 {
		for _, w := range def.Momentum {
			cfg.Methods.Momentum = append(cfg.Methods.Momentum, WindowSpec{Size: w.Size, Weight: w.Weight})
		}
	}
	if cfg.Methods.MomentumMix == (MixConfig{}) {
		cfg.Methods.MomentumMix = MixConfig{
			Momentum:     def.MomentumMix.Momentum,
			Acceleration: def.MomentumMix.Acceleration,
		}
	}
	if cfg.Methods.AccelShort <= 0 {
		cfg.Methods.AccelShort = def.AccelShort
	}
	if cfg.Methods.AccelLong <= 0 {
		cfg.Methods.AccelLong = def.AccelLong
	}
	if cfg.Methods.EnsembleSize <= 0 {
		cfg.Methods.EnsembleSize = def.EnsembleSize
	}
	if cfg.Methods.ConsensusSet <= 0 {
		cfg.Methods.ConsensusSet = def.ConsensusSet
	}
	if cfg.Methods.ConsensusMin <= 0 {
		cfg.Methods.ConsensusMin = def.ConsensusMin
	}
	if cfg.Prize.Tickets <= 0 {
		cfg.Prize.Tickets = pz.Tickets
	}
	if cfg.Prize.Candidates <= 0 {
		cfg.Prize.Candidates = pz.Candidates
	}
	if cfg.Prize.MinHistory <= 0 {
		cfg.Prize.MinHistory = pz.MinHistory
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = "datos"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "loteria.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// SelectorParams traduce la configuración a los parámetros de los
// métodos, con la semilla del backtest.
func (c *Config) SelectorParams() selector.Params {
	p := selector.Params{
		HotWindow:  c.Methods.HotWindow,
		MinHistory: c.Methods.MinHistory,
		Blend: selector.BlendWeights{
			Frequency: c.Methods.Blend.Frequency,
			Recent:    c.Methods.Blend.Recent,
			Overdue:   c.Methods.Blend.Overdue,
		},
		MomentumMix: selector.MomentumMix{
			Momentum:     c.Methods.MomentumMix.Momentum,
			Acceleration: c.Methods.MomentumMix.Acceleration,
		},
		AccelShort:   c.Methods.AccelShort,
		AccelLong:    c.Methods.AccelLong,
		Seed:         c.Backtest.Seed,
		EnsembleSize: c.Methods.EnsembleSize,
		ConsensusSet: c.Methods.ConsensusSet,
		ConsensusMin: c.Methods.ConsensusMin,
	}
	for _, w := range c.Methods.Momentum {
		p.Momentum = append(p.Momentum, domain.WindowWeight{Size: w.Size, Weight: w.Weight})
	}
	return p
}

// BacktestParams traduce la sección de backtest.
func (c *Config) BacktestParams() backtest.Config {
	return backtest.Config{
		Evaluations: c.Backtest.Evaluations,
		Reps:        c.Backtest.Reps,
		Workers:     c.Backtest.Workers,
		Seed:        c.Backtest.Seed,
	}
}

// PrizeParams traduce la sección de premios.
func (c *Config) PrizeParams() prize.Params {
	p := prize.DefaultParams()
	p.Tickets = c.Prize.Tickets
	p.Candidates = c.Prize.Candidates
	p.MinHistory = c.Prize.MinHistory
	return p
}

// PayoutTable devuelve la tabla de premios configurada, o la de La
// Primitiva si no hay ninguna.
func (c *Config) PayoutTable() domain.PayoutTable {
	if len(c.Prize.Payouts) == 0 {
		return domain.DefaultPrimitivaPayouts()
	}
	table := make(domain.PayoutTable, 0, len(c.Prize.Payouts))
	for _, t := range c.Prize.Payouts {
		table = append(table, domain.PayoutTier{
			Category:  t.Category,
			Hits:      t.Hits,
			Reintegro: t.Reintegro,
			Value:     t.Value,
			Jackpot:   t.Jackpot,
		})
	}
	return table
}
