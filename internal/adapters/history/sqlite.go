package history

// sqlite.go — archivo de sorteos y resúmenes de runs.
//
// Estrategia:
//   - `draws`: una fila por sorteo, clave (game, fecha). El ingest hace
//     upsert, así que re-descargar un histórico completo es idempotente.
//   - `runs`: resumen ligero por evaluación (media, percentiles, baseline),
//     una fila por run. Permite comparar métodos entre fechas de ingest.
//   - Prune automático al arrancar: runs con más de 90 días.

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Un sorteo por fila; n6 queda a 0 en juegos de 5 números
CREATE TABLE IF NOT EXISTS draws (
    game           TEXT    NOT NULL,
    fecha          DATE    NOT NULL,
    n1             INTEGER NOT NULL,
    n2             INTEGER NOT NULL,
    n3             INTEGER NOT NULL,
    n4             INTEGER NOT NULL,
    n5             INTEGER NOT NULL,
    n6             INTEGER NOT NULL DEFAULT 0,
    complementario INTEGER NOT NULL DEFAULT 0,
    reintegro      INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (game, fecha)
);

-- Resumen ligero por run de backtest
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    game        TEXT     NOT NULL,
    method      TEXT     NOT NULL,
    ran_at      DATETIME NOT NULL,
    evaluations INTEGER  NOT NULL DEFAULT 0,
    mean_hits   REAL     NOT NULL DEFAULT 0,
    pct3        REAL     NOT NULL DEFAULT 0,
    pct4        REAL     NOT NULL DEFAULT 0,
    baseline    REAL     NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_draws_game  ON draws(game, fecha DESC);
CREATE INDEX IF NOT EXISTS idx_runs_method ON runs(game, method, ran_at DESC);
`

// Los runs antiguos dejan de ser comparables cuando el histórico crece;
// se purgan al arrancar para mantener la DB ligera.
const retentionRuns = 90 * 24 * time.Hour

// SQLiteArchive implementa ports.Archive usando SQLite (pure Go, sin CGo).
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive abre (o crea) la base de datos y aplica el schema.
func NewSQLiteArchive(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history.NewSQLiteArchive: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history.NewSQLiteArchive: apply schema: %w", err)
	}

	a := &SQLiteArchive{db: db}
	a.pruneOld(context.Background())
	return a, nil
}

// pruneOld elimina runs superados; best-effort, un fallo no impide arrancar.
func (a *SQLiteArchive) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	a.db.ExecContext(ctx, `DELETE FROM runs WHERE ran_at < ?`, cutoff)
}

// SaveDraws hace upsert de los sorteos; devuelve cuántas filas son nuevas.
func (a *SQLiteArchive) SaveDraws(ctx context.Context, game domain.Game, draws []domain.Draw) (int, error) {
	if len(draws) == 0 {
		return 0, nil
	}

	before, err := a.countDraws(ctx, game)
	if err != nil {
		return 0, err
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("history.SaveDraws: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO draws (game, fecha, n1, n2, n3, n4, n5, n6, complementario, reintegro)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game, fecha) DO UPDATE SET
			n1 = excluded.n1, n2 = excluded.n2, n3 = excluded.n3,
			n4 = excluded.n4, n5 = excluded.n5, n6 = excluded.n6,
			complementario = excluded.complementario,
			reintegro      = excluded.reintegro
	`)
	if err != nil {
		return 0, fmt.Errorf("history.SaveDraws: prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range draws {
		if err := d.Validate(game); err != nil {
			return 0, fmt.Errorf("history.SaveDraws: %w", err)
		}
		nums := make([]int, 6)
		copy(nums, d.Numbers)
		if _, err := stmt.ExecContext(ctx,
			game.Key,
			d.Date.Format(dateLayout),
			nums[0], nums[1], nums[2], nums[3], nums[4], nums[5],
			d.Complementario,
			d.Reintegro,
		); err != nil {
			return 0, fmt.Errorf("history.SaveDraws: upsert %s: %w", d.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("history.SaveDraws: commit: %w", err)
	}

	after, err := a.countDraws(ctx, game)
	if err != nil {
		return 0, err
	}
	return after - before, nil
}

// LoadHistory devuelve el histórico completo del juego, cronológico
// ascendente y validado.
func (a *SQLiteArchive) LoadHistory(ctx context.Context, game domain.Game) (domain.History, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT fecha, n1, n2, n3, n4, n5, n6, complementario, reintegro
		FROM draws
		WHERE game = ?
		ORDER BY fecha ASC
	`, game.Key)
	if err != nil {
		return nil, fmt.Errorf("history.LoadHistory: query: %w", err)
	}
	defer rows.Close()

	var h domain.History
	for rows.Next() {
		// La columna es DATE: el driver la devuelve ya como time.Time.
		var date time.Time
		nums := make([]int, 6)
		var comp, reint int
		if err := rows.Scan(&date, &nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &nums[5], &comp, &reint); err != nil {
			return nil, fmt.Errorf("history.LoadHistory: scan row: %w", err)
		}
		picked := make([]int, game.Pick)
		copy(picked, nums[:game.Pick])
		sort.Ints(picked)
		h = append(h, domain.Draw{Date: date, Numbers: picked, Complementario: comp, Reintegro: reint})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history.LoadHistory: rows: %w", err)
	}

	if err := h.Validate(game); err != nil {
		return nil, fmt.Errorf("history.LoadHistory: %w", err)
	}
	return h, nil
}

// SaveRun persiste el resumen de una evaluación.
func (a *SQLiteArchive) SaveRun(ctx context.Context, run domain.RunSummary) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO runs (id, game, method, ran_at, evaluations, mean_hits, pct3, pct4, baseline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Game, run.Method, run.RanAt.UTC(),
		run.Evaluations, run.MeanHits, run.PctAtLeast3, run.PctAtLeast4, run.Baseline,
	)
	if err != nil {
		return fmt.Errorf("history.SaveRun: insert: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func (a *SQLiteArchive) countDraws(ctx context.Context, game domain.Game) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM draws WHERE game = ?`, game.Key).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("history.countDraws: %w", err)
	}
	return n, nil
}
