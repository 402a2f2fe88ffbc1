// Package gateway es el único punto de salida hacia la API remota: construye las
// peticiones, adjunta el Bearer token y detecta la expiración de la sesión.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhoicas/Inventario-app/internal/domain"
	"github.com/jhoicas/Inventario-app/pkg/logger"
)

// maxBodyBytes límite de lectura de respuestas.
const maxBodyBytes = 4 << 20

// Session lo que el gateway necesita de la sesión: el token vigente y la forma de cerrarla.
type Session interface {
	Token() string
	Expire(ctx context.Context)
}

// RequestError respuesta no 2xx distinta de 401/403.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP Error: %d", e.Status)
}

// StatusOf devuelve el status HTTP de un *RequestError envuelto en err, o 0.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}

// Option configura el Gateway.
type Option func(*Gateway)

// WithHTTPClient reemplaza el cliente HTTP (timeouts, transporte de tests).
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// RequestOption ajusta una petición puntual.
type RequestOption func(*requestConfig)

type requestConfig struct {
	skipAuth bool
}

// SkipAuth no adjunta Authorization ni trata 401/403 como expiración (ej: login).
func SkipAuth() RequestOption {
	return func(c *requestConfig) { c.skipAuth = true }
}

// Gateway cliente HTTP de la API remota. Una sola tentativa por llamada: sin reintentos ni backoff.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	log        *logger.Logger
}

// New construye el gateway sobre baseURL (ej: http://localhost:5000/api).
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AttachSession inyecta la sesión. Debe llamarse antes de la primera petición autenticada;
// sin sesión las peticiones salen sin token.
func (g *Gateway) AttachSession(s Session) {
	g.session = s
}

// Get GET path y decodifica la respuesta en out (si no es nil).
func (g *Gateway) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return g.do(ctx, http.MethodGet, path, nil, out, opts)
}

// Post POST body como JSON.
func (g *Gateway) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return g.do(ctx, http.MethodPost, path, body, out, opts)
}

// Put PUT body como JSON.
func (g *Gateway) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return g.do(ctx, http.MethodPut, path, body, out, opts)
}

// Delete DELETE path.
func (g *Gateway) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return g.do(ctx, http.MethodDelete, path, nil, out, opts)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any, opts []RequestOption) error {
	var cfg requestConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: serializar body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if !cfg.skipAuth && g.session != nil {
		if token := g.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.log.Error().Err(err).Str("method", method).Str("path", path).Msg("error en la petición")
		if ctx.Err() != nil {
			return fmt.Errorf("gateway: %s %s cancelado: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("gateway: leer respuesta: %w", err)
	}

	g.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("respuesta")

	if !cfg.skipAuth && isSessionExpired(resp.StatusCode) {
		g.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("token expirado, cerrando sesión...")
		if g.session != nil {
			g.session.Expire(ctx)
		}
		return fmt.Errorf("gateway: %s %s: %w", method, path, domain.ErrSessionExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Method: method, Path: path, Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("gateway: decodificar respuesta de %s: %w", path, err)
	}
	return nil
}

func isSessionExpired(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
