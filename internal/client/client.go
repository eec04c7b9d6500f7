package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
)

const (
	clientTimeout = 5 * time.Second
)

var ErrUnexpectedStatus = errors.New("server returned unexpected status")

// Client talks to the REST API of a reversi server.
type Client struct {
	// config contains details on how to connect to the server
	config *config.ClientConfig

	httpClient *http.Client
}

func NewClient(config *config.ClientConfig) *Client {
	client := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
	}

	slog.Debug("New API client created", "server_url", config.ServerURL)

	return client
}

func (c *Client) logRequestAsCurl(req *http.Request) {
	// Do not build string if we're not logging it
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	var builder strings.Builder
	builder.WriteString("curl -X ")
	builder.WriteString(req.Method)
	builder.WriteString(" '")
	builder.WriteString(req.URL.String())
	builder.WriteString("'")

	for key, values := range req.Header {
		for _, value := range values {
			builder.WriteString(" -H '")
			builder.WriteString(strings.ToLower(key))
			builder.WriteString(": ")
			builder.WriteString(value)
			builder.WriteString("'")
		}
	}

	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			slog.Error("Failed to read request body", "error", err)
		}

		if len(body) > 0 {
			builder.WriteString(" -d '")
			builder.WriteString(strings.ReplaceAll(string(body), "'", "'\\''"))
			builder.WriteString("'")
		}

		// Restore the original body
		req.Body = io.NopCloser(bytes.NewBuffer(body))
	}

	slog.Debug("Sending request", "command", builder.String())
}

// errorMessage extracts the "error" field the server puts in error responses.
func errorMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == "" {
		return strings.TrimSpace(string(body))
	}
	return parsed.Error
}

// request sends a JSON request and decodes the JSON response into result, unless result is nil.
func (c *Client) request(ctx context.Context, method string, path string, payload any, result any) error {
	var body io.Reader

	if payload == nil {
		body = http.NoBody
	} else {
		buf := &bytes.Buffer{}
		err := json.NewEncoder(buf).Encode(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.ServerURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.config.Token != "" {
		req.Header.Set("X-Token", c.config.Token)
	}

	c.logRequestAsCurl(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	slog.Debug("Response", "status", resp.Status, "body", string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

func (c *Client) Start(ctx context.Context) (models.StateResponse, error) {
	var state models.StateResponse
	if err := c.request(ctx, http.MethodGet, "/api/start", nil, &state); err != nil {
		return models.StateResponse{}, fmt.Errorf("failed to get start position: %w", err)
	}
	return state, nil
}

// Moves returns the legal moves of mover, ordered row by row.
func (c *Client) Moves(ctx context.Context, board othello.Board, mover othello.Color) ([]othello.MoveCandidate, error) {
	payload := models.MovesPayload{
		Board: board,
		Mover: mover,
	}

	var response models.MovesResponse
	if err := c.request(ctx, http.MethodPost, "/api/moves", payload, &response); err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}

	return response.Moves, nil
}

func (c *Client) Apply(ctx context.Context, board othello.Board, mover othello.Color, move othello.Coord) (models.StateResponse, error) {
	payload := models.ApplyPayload{
		Board: board,
		Mover: mover,
		Move:  &move,
	}

	var state models.StateResponse
	if err := c.request(ctx, http.MethodPost, "/api/apply", payload, &state); err != nil {
		return models.StateResponse{}, fmt.Errorf("failed to apply move: %w", err)
	}

	return state, nil
}

// CPUMove asks the server to pick a move. It returns othello.ErrNoMoves when mover has to pass.
func (c *Client) CPUMove(ctx context.Context, board othello.Board, mover othello.Color, tier othello.Tier) (othello.MoveCandidate, error) {
	payload := models.CPUMovePayload{
		Board: board,
		Mover: mover,
		Tier:  tier,
	}

	var candidate othello.MoveCandidate
	err := c.request(ctx, http.MethodPost, "/api/cpu-move", payload, &candidate)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusConflict {
		return othello.MoveCandidate{}, othello.ErrNoMoves
	}

	if err != nil {
		return othello.MoveCandidate{}, fmt.Errorf("failed to get cpu move: %w", err)
	}

	return candidate, nil
}

func (c *Client) Stats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse
	if err := c.request(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return models.StatsResponse{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

func (c *Client) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse
	if err := c.request(ctx, http.MethodGet, "/version", nil, &version); err != nil {
		return models.VersionResponse{}, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}
