package data

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

	"github.com/charmbracelet/log"
)

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error response (%d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

type TokenSource func() string

type Client struct {
	BaseURL    string
	Token      TokenSource
	HTTPClient *http.Client
}

func NewClient(baseURL string, token TokenSource, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Do sends body as JSON and decodes the response into out when out is not nil.
func (c *Client) Do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != nil {
		if token := c.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log.Debug("API request", "method", method, "url", u)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// RestService serves one resource collection mounted at Path.
type RestService[T any] struct {
	Client *Client
	Path   string
}

func NewRestService[T any](client *Client, path string) *RestService[T] {
	return &RestService[T]{
		Client: client,
		Path:   "/" + strings.Trim(path, "/"),
	}
}

func (s *RestService[T]) GetData(ctx context.Context, params ListParams) (ListResponse[T], error) {
	return s.list(ctx, s.Path, params)
}

func (s *RestService[T]) GetDataTree(ctx context.Context, params ListParams) (ListResponse[T], error) {
	return s.list(ctx, s.Path+"/tree", params)
}

func (s *RestService[T]) Create(ctx context.Context, data Payload) (T, error) {
	var item T
	if err := s.Client.Do(ctx, http.MethodPost, s.Path, nil, data, &item); err != nil {
		return item, fmt.Errorf("creating %s: %w", s.Path, err)
	}

	return item, nil
}

func (s *RestService[T]) Update(ctx context.Context, id string, data Payload) (T, error) {
	var item T
	if err := s.Client.Do(ctx, http.MethodPut, s.itemPath(id), nil, data, &item); err != nil {
		return item, fmt.Errorf("updating %s: %w", s.itemPath(id), err)
	}

	return item, nil
}

func (s *RestService[T]) Delete(ctx context.Context, id string) error {
	if err := s.Client.Do(ctx, http.MethodDelete, s.itemPath(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting %s: %w", s.itemPath(id), err)
	}

	return nil
}

func (s *RestService[T]) list(ctx context.Context, path string, params ListParams) (ListResponse[T], error) {
	query := url.Values{}
	for key := range params {
		query.Set(key, params.String(key))
	}

	var response ListResponse[T]
	if err := s.Client.Do(ctx, http.MethodGet, path, query, nil, &response); err != nil {
		return ListResponse[T]{}, fmt.Errorf("fetching %s: %w", path, err)
	}
	if response.Data == nil {
		response.Data = []T{}
	}

	return response, nil
}

func (s *RestService[T]) itemPath(id string) string {
	return s.Path + "/" + url.PathEscape(id)
}
