package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
game: bonoloto
backtest:
  evaluations: 500
  reps: 3
  workers: 4
  seed: 99
methods:
  hot_window: 20
  blend:
    frequency: 0.2
    recent: 0.6
    overdue: 0.2
prize:
  tickets: 10
storage:
  dsn: ":memory:"
log:
  level: debug
`)
	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "bonoloto", cfg.Game)
	assert.Equal(t, 500, cfg.Backtest.Evaluations)
	assert.Equal(t, 3, cfg.Backtest.Reps)
	assert.Equal(t, int64(99), cfg.Backtest.Seed)
	assert.Equal(t, 20, cfg.Methods.HotWindow)
	assert.Equal(t, 0.6, cfg.Methods.Blend.Recent)
	assert.Equal(t, 10, cfg.Prize.Tickets)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `game: primitiva`)
	cfg, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, 300, cfg.Backtest.Evaluations)
	assert.Equal(t, 12, cfg.Methods.HotWindow)
	assert.Equal(t, 0.70, cfg.Methods.Blend.Recent)
	assert.Equal(t, 15, cfg.Prize.Tickets)
	assert.Equal(t, 17, cfg.Prize.Candidates)
	assert.Equal(t, "loteria.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Len(t, cfg.Methods.Momentum, 3)
}

func TestLoad_SampleConfigGameKeysResolve(t *testing.T) {
	// Las URLs de ingest del fichero de ejemplo van indexadas por la
	// misma clave que GameByKey; una clave huérfana deja el juego sin
	// ingest posible.
	cfg, err := Load("config.yaml")
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.Ingest.URLs)
	for key := range cfg.Ingest.URLs {
		g, err := domain.GameByKey(key)
		assert.NoError(t, err, key)
		assert.Equal(t, key, g.Key)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/no/existe.yaml")
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "backtest: [esto no es un mapa")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOTERIA_DSN", "override.db")

	path := writeConfig(t, `
log:
  level: info
storage:
  dsn: config.db
`)
	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "override.db", cfg.Storage.DSN)
}

func TestDefault_MatchesReferenceParams(t *testing.T) {
	cfg := Default()
	assert.Equal(t, domain.Primitiva.Key, cfg.Game)

	p := cfg.SelectorParams()
	assert.NoError(t, p.Blend.Validate())
	assert.NoError(t, p.MomentumMix.Validate())
	assert.Equal(t, 12, p.HotWindow)
	assert.Equal(t, int64(1), p.Seed)
}

func TestSelectorParams_CarriesMomentumWindows(t *testing.T) {
	cfg := Default()
	p := cfg.SelectorParams()
	assert.Len(t, p.Momentum, 3)
	assert.Equal(t, 10, p.Momentum[0].Size)
	assert.Equal(t, 0.5, p.Momentum[0].Weight)
}

func TestPayoutTable_DefaultIsPrimitiva(t *testing.T) {
	cfg := Default()
	table := cfg.PayoutTable()
	assert.Equal(t, domain.DefaultPrimitivaPayouts(), table)
}

func TestPayoutTable_CustomTiers(t *testing.T) {
	cfg := Default()
	cfg.Prize.Payouts = []TierConfig{
		{Category: "5", Hits: 5, Value: 2000},
		{Category: "R", Hits: 0, Reintegro: true, Value: 1},
	}
	table := cfg.PayoutTable()
	assert.Len(t, table, 2)

	tier, ok := table.Match(5, false)
	assert.True(t, ok)
	assert.Equal(t, 2000.0, tier.Value)
}

func TestBacktestParams_Translation(t *testing.T) {
	cfg := Default()
	cfg.Backtest.Evaluations = 123
	cfg.Backtest.Workers = 7
	bt := cfg.BacktestParams()
	assert.Equal(t, 123, bt.Evaluations)
	assert.Equal(t, 7, bt.Workers)
}
