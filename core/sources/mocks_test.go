// ABOUTME: Hand-rolled HTTP client mock and fixtures for adapter tests
// ABOUTME: Serves canned payloads and records the URLs and headers requested

package sources

import (
	"context"
	"io"
	"strings"

	"devpulse-search-api/core/interfaces"
)

// mockHTTPClient implements interfaces.HTTPClient, returning a canned
// response and recording every request it sees.
type mockHTTPClient struct {
	statusCode int
	payload    string
	err        error

	requestedURLs []string
	headers       []map[string]string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.GetWithHeaders(ctx, url, nil)
}

func (m *mockHTTPClient) GetWithHeaders(_ context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.requestedURLs = append(m.requestedURLs, url)
	m.headers = append(m.headers, headers)
	if m.err != nil {
		return nil, m.err
	}
	status := m.statusCode
	if status == 0 {
		status = 200
	}
	return &mockResponse{statusCode: status, body: m.payload}, nil
}

func (m *mockHTTPClient) Post(_ context.Context, url string, _ io.Reader) (interfaces.Response, error) {
	m.requestedURLs = append(m.requestedURLs, url)
	return &mockResponse{statusCode: 200, body: m.payload}, nil
}

func (m *mockHTTPClient) lastURL() string {
	if len(m.requestedURLs) == 0 {
		return ""
	}
	return m.requestedURLs[len(m.requestedURLs)-1]
}

type mockResponse struct {
	statusCode int
	body       string
}

func (r *mockResponse) StatusCode() int { return r.statusCode }

func (r *mockResponse) Body() io.ReadCloser { return io.NopCloser(strings.NewReader(r.body)) }

func (r *mockResponse) Header(string) string { return "" }

func deps(client interfaces.HTTPClient) interfaces.Dependencies {
	return interfaces.Dependencies{HTTPClient: client}
}
