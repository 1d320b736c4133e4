package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// TestContext drives a running viewer over HTTP and keeps the last response.
type TestContext struct {
	BaseURL    string
	AdminToken string
	client     *http.Client

	status int
	body   []byte
}

func NewTestContext() *TestContext {
	base := os.Getenv("VIEWER_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &TestContext{
		BaseURL:    base,
		AdminToken: os.Getenv("ACTIVITY_ADMIN_TOKEN"),
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (tc *TestContext) reset() {
	tc.status = 0
	tc.body = nil
}

func (tc *TestContext) do(method, path string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) POST(path string, headers map[string]string) error {
	return tc.do(http.MethodPost, path, headers)
}

func (tc *TestContext) GetAdminToken() string {
	return tc.AdminToken
}

// DecodeResponse unmarshals the last response body into v.
func (tc *TestContext) DecodeResponse(v any) error {
	if err := json.NewDecoder(bytes.NewReader(tc.body)).Decode(v); err != nil {
		return fmt.Errorf("decode response %q: %w", tc.body, err)
	}
	return nil
}

func (tc *TestContext) viewerIsRunning() error {
	if err := tc.GET("/healthz"); err != nil {
		return err
	}
	if tc.status != http.StatusOK {
		return fmt.Errorf("viewer health check returned %d", tc.status)
	}
	return nil
}

func (tc *TestContext) responseStatusShouldBe(code int) error {
	if tc.status != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, tc.status, tc.body)
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqualNumber(field string, want int) error {
	var body map[string]any
	if err := tc.DecodeResponse(&body); err != nil {
		return err
	}
	got, ok := body[field].(float64)
	if !ok {
		return fmt.Errorf("field %q missing or not a number in %s", field, tc.body)
	}
	if int(got) != want {
		return fmt.Errorf("expected %s=%d, got %v", field, want, got)
	}
	return nil
}

func (tc *TestContext) responseErrorShouldBe(code string) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := tc.DecodeResponse(&body); err != nil {
		return err
	}
	if body.Error != code {
		return fmt.Errorf("expected error %q, got %q", code, body.Error)
	}
	return nil
}
