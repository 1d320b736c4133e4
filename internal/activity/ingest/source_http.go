package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPSource fetches the CSV document with a GET request. Any non-2xx status
// is reported as ErrSourceUnavailable.
type HTTPSource struct {
	client *http.Client
	url    string
}

func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, unavailable(s.Name(), fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	return body, nil
}
