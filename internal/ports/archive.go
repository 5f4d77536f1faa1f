package ports

import (
	"context"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// Archive persiste los sorteos ingestados y los resúmenes de cada run.
type Archive interface {
	// SaveDraws hace upsert de los sorteos del juego; devuelve cuántas
	// filas son nuevas.
	SaveDraws(ctx context.Context, game domain.Game, draws []domain.Draw) (int, error)

	// LoadHistory devuelve el histórico completo del juego en orden
	// cronológico ascendente.
	LoadHistory(ctx context.Context, game domain.Game) (domain.History, error)

	// SaveRun persiste el resumen de una evaluación.
	SaveRun(ctx context.Context, run domain.RunSummary) error

	// Close cierra la conexión limpiamente.
	Close() error
}
