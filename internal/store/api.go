package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ucielsola/trackit/internal/stats"
)

// APIClient is the REST layer the resource stores sit on. The
// http.Client is expected to carry the session cookie (a cookie jar in
// real use, the test server's client in tests).
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &APIClient{baseURL: baseURL, httpClient: httpClient}
}

type clientsResponse struct {
	Clients []stats.ClientWithStats `json:"clients"`
	Total   int                     `json:"total"`
}

type clientResponse struct {
	Client stats.ClientWithStats `json:"client"`
}

type projectsResponse struct {
	Projects []stats.ProjectWithStats `json:"projects"`
	Total    int                      `json:"total"`
}

type projectResponse struct {
	Project stats.ProjectWithStats `json:"project"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *APIClient) ListClients(ctx context.Context) ([]stats.ClientWithStats, error) {
	var out clientsResponse

	if err := c.do(ctx, http.MethodGet, "/private/api/clients", nil, &out); err != nil {
		return nil, err
	}

	return out.Clients, nil
}

func (c *APIClient) CreateClient(ctx context.Context, name string) (*stats.ClientWithStats, error) {
	var out clientResponse

	body := map[string]string{"name": name}

	if err := c.do(ctx, http.MethodPost, "/private/api/clients", body, &out); err != nil {
		return nil, err
	}

	return &out.Client, nil
}

func (c *APIClient) UpdateClient(ctx context.Context, id uint, patch ClientPatch) (*stats.ClientWithStats, error) {
	var out clientResponse

	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/private/api/clients/%d", id), patch, &out); err != nil {
		return nil, err
	}

	return &out.Client, nil
}

func (c *APIClient) DeleteClient(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/private/api/clients/%d", id), nil, nil)
}

func (c *APIClient) ListProjects(ctx context.Context) ([]stats.ProjectWithStats, error) {
	var out projectsResponse

	if err := c.do(ctx, http.MethodGet, "/private/api/projects", nil, &out); err != nil {
		return nil, err
	}

	return out.Projects, nil
}

func (c *APIClient) CreateProject(ctx context.Context, input NewProject) (*stats.ProjectWithStats, error) {
	var out projectResponse

	if err := c.do(ctx, http.MethodPost, "/private/api/projects", input, &out); err != nil {
		return nil, err
	}

	return &out.Project, nil
}

func (c *APIClient) UpdateProject(ctx context.Context, id uint, patch ProjectPatch) (*stats.ProjectWithStats, error) {
	var out projectResponse

	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/private/api/projects/%d", id), patch, &out); err != nil {
		return nil, err
	}

	return &out.Project, nil
}

func (c *APIClient) DeleteProject(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/private/api/projects/%d", id), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)

		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)

	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse

		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}

		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
