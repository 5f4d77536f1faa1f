package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/HCTop/LoteriaProbabilidad/internal/domain"
)

// Ingester descarga y fusiona las hojas históricas de cada juego.
// Una misma fecha puede aparecer en varias hojas; se queda la primera
// aparición (las hojas más recientes van primero en la configuración).
type Ingester struct {
	client *Client
	urls   map[string][]string // clave de juego -> hojas, de más nueva a más vieja
	logger *slog.Logger
}

func NewIngester(client *Client, urls map[string][]string, logger *slog.Logger) *Ingester {
	return &Ingester{client: client, urls: urls, logger: logger}
}

// FetchGame descarga todas las hojas del juego y devuelve el histórico
// fusionado en orden cronológico, ya validado.
func (in *Ingester) FetchGame(ctx context.Context, game domain.Game) (domain.History, error) {
	urls, ok := in.urls[game.Key]
	if !ok || len(urls) == 0 {
		return nil, fmt.Errorf("ingest.FetchGame: no urls configured for %s", game.Key)
	}

	seen := make(map[string]struct{})
	var merged domain.History
	for _, url := range urls {
		raw, err := in.client.Download(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("ingest.FetchGame: %s: %w", game.Key, err)
		}
		draws, err := Normalize(raw, game)
		if err != nil {
			return nil, fmt.Errorf("ingest.FetchGame: %s: %w", game.Key, err)
		}
		added := 0
		for _, d := range draws {
			key := d.Date.Format("2006-01-02")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, d)
			added++
		}
		in.logger.Debug("hoja procesada",
			"game", game.Key, "url", url, "rows", len(draws), "added", added)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.Before(merged[j].Date) })
	if err := merged.Validate(game); err != nil {
		return nil, fmt.Errorf("ingest.FetchGame: %s: %w", game.Key, err)
	}
	in.logger.Info("histórico ingerido", "game", game.Key, "draws", len(merged))
	return merged, nil
}
