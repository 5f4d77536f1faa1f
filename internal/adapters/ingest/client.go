package ingest

// client.go — descarga de los históricos publicados como CSV.
//
// Las hojas públicas aguantan poco: rate limiting conservador y retries
// con backoff exponencial, respetando el contexto. Nunca se fabrican
// datos: si una descarga falla tras los retries, el error sube al caller
// y el run de ingest entero se considera fallido.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Una petición por segundo de media con ráfagas cortas: suficiente
	// para un puñado de hojas y amable con el publicador.
	requestsPerSec = 1
	burst          = 3

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client es el HTTP client de ingest con rate limiting y retries.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient crea el cliente con timeouts y límites por defecto.
func NewClient() *Client {
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		limiter: rate.NewLimiter(requestsPerSec, burst),
	}
}

// Download descarga la URL y devuelve el cuerpo como texto.
func (c *Client) Download(ctx context.Context, url string) (string, error) {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("ingest.Download: rate limiter: %w", err)
		}

		body, retryable, err := c.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retryable || attempt == maxRetries {
			return "", fmt.Errorf("ingest.Download: %q: %w", url, err)
		}

		slog.Warn("download failed, retrying", "url", url, "attempt", attempt+1, "err", err)
		c.sleep(ctx, attempt)
	}
	return "", fmt.Errorf("ingest.Download: %q: exhausted %d retries", url, maxRetries)
}

// fetch hace un GET y clasifica el error como retryable o definitivo.
func (c *Client) fetch(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/csv,text/plain,*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", true, fmt.Errorf("status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return "", false, fmt.Errorf("status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read body: %w", err)
	}
	return string(b), false, nil
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
