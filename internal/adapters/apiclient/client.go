// Package apiclient habla con una instancia remota de la API de pedigree.
// Lo usa el CLI cuando se le pasa --api-url.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-pedigree/internal/domain/pedigree"
)

const DefaultTimeout = 10 * time.Second

type Client struct {
	HTTP    *http.Client
	BaseURL string
}

// New valida baseURL y crea un Client con timeout (<= 0 usa DefaultTimeout).
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// HTTPError representa una respuesta no-2xx. Unwrap traduce 400/404 a los
// errores del dominio para que el CLI los trate igual que en modo local.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *HTTPError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return pedigree.ErrInvalidInput
	case http.StatusNotFound:
		return pedigree.ErrNotFound
	}
	return nil
}

type Ancestor struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Role       pedigree.Role `json:"role"`
	Line       pedigree.Line `json:"line"`
	Label      string        `json:"label"`
	Generation int           `json:"generation"`
	BirthDate  *time.Time    `json:"birth_date"`
}

type Registrations struct {
	RootID      string `json:"root_id"`
	Prefix      string `json:"prefix"`
	Applied     bool   `json:"applied"`
	Set         int    `json:"set"`
	Cleared     int    `json:"cleared"`
	Assignments []struct {
		AnimalID   string `json:"animal_id"`
		Generation int    `json:"generation"`
		Sequence   int    `json:"sequence"`
		Code       string `json:"code"`
	} `json:"assignments"`
	Changes []struct {
		AnimalID string `json:"animal_id"`
		Code     string `json:"code"`
	} `json:"changes"`
}

func (c *Client) Ancestors(ctx context.Context, petID string, maxGeneration int) ([]Ancestor, error) {
	path := "/pets/" + url.PathEscape(petID) + "/ancestors"
	if maxGeneration > 0 {
		path += "?max_generation=" + strconv.Itoa(maxGeneration)
	}
	var out []Ancestor
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Registrations previsualiza (apply=false) o aplica los códigos del linaje.
func (c *Client) Registrations(ctx context.Context, rootID, prefix string, apply bool) (Registrations, error) {
	path := "/lineages/" + url.PathEscape(rootID) + "/registrations"

	var out Registrations
	var err error
	if apply {
		err = c.doJSON(ctx, http.MethodPost, path, map[string]string{"prefix": prefix}, &out)
	} else {
		if prefix != "" {
			path += "?prefix=" + url.QueryEscape(prefix)
		}
		err = c.doJSON(ctx, http.MethodGet, path, nil, &out)
	}
	return out, err
}

func (c *Client) Compatibility(ctx context.Context, aID, bID string) (pedigree.Verdict, error) {
	var out pedigree.Verdict
	err := c.doJSON(ctx, http.MethodPost, "/compatibility", map[string]string{"a_id": aID, "b_id": bID}, &out)
	return out, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("apiclient: nil client")
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1MB max

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: unmarshal json: %w", err)
	}
	return nil
}
