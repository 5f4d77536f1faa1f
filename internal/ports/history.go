package ports

import (
	"context"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// HistorySource carga el histórico normalizado de un juego, en orden
// cronológico ascendente y ya validado.
type HistorySource interface {
	LoadHistory(ctx context.Context, game domain.Game) (domain.History, error)
}
