package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/tabellone/internal/domain/model"
	"github.com/okian/tabellone/internal/domain/standings"
)

// SubmitResult classifies the service's answer to a match submission.
type SubmitResult string

// Submission outcomes.
const (
	Accepted  SubmitResult = "accepted"
	Duplicate SubmitResult = "duplicate"
	Rejected  SubmitResult = "rejected"
)

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client talks to the standings service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks that the service answers /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthz returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// Submit posts one match. A 4xx or 5xx answer yields Rejected with an error
// carrying the service's message.
func (c *Client) Submit(ctx context.Context, m model.Match) (SubmitResult, error) {
	body, err := json.Marshal(matchPayload(m))
	if err != nil {
		return Rejected, fmt.Errorf("marshal match: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/matches", body)
	if err != nil {
		return Rejected, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Rejected, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusAccepted:
		return Accepted, nil
	case http.StatusOK:
		var ack ackResponse
		if err := json.Unmarshal(data, &ack); err == nil && !ack.Duplicate {
			return Accepted, nil
		}
		return Duplicate, nil
	default:
		return Rejected, statusError(resp.StatusCode, data)
	}
}

// Standings fetches the JSON table of a tournament.
func (c *Client) Standings(ctx context.Context, tournamentID string) ([]standings.Standing, error) {
	data, err := c.get(ctx, "/standings/"+url.PathEscape(tournamentID))
	if err != nil {
		return nil, err
	}
	var rows []standings.Standing
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode standings: %w", err)
	}
	return rows, nil
}

// RenderedStandings fetches the text table of a tournament, optionally limited to the top n rows.
func (c *Client) RenderedStandings(ctx context.Context, tournamentID string, n int) (string, error) {
	q := url.Values{"format": {"text"}}
	if n > 0 {
		q.Set("limit", fmt.Sprint(n))
	}
	data, err := c.get(ctx, "/standings/"+url.PathEscape(tournamentID)+"?"+q.Encode())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func statusError(status int, body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Code != "" {
		return fmt.Errorf("%w %d: %s: %s", ErrUnexpectedStatus, status, e.Code, e.Message)
	}
	return fmt.Errorf("%w %d", ErrUnexpectedStatus, status)
}

// matchPayload mirrors the POST /matches body, which takes an RFC3339 ts.
func matchPayload(m model.Match) map[string]any {
	return map[string]any{
		"event_id":      m.EventID,
		"tournament_id": m.TournamentID,
		"sport":         m.Sport,
		"home_team":     m.HomeTeam,
		"away_team":     m.AwayTeam,
		"home_score":    m.HomeScore,
		"away_score":    m.AwayScore,
		"ts":            m.TS.UTC().Format(time.RFC3339),
	}
}
