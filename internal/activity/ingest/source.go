package ingest

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks Source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Source fetches the raw CSV document in full.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// SourceDeps carries the clients a Source may need. Zero values are valid for
// sources that do not use them.
type SourceDeps struct {
	HTTPClient *http.Client
	Redis      KeyReader
}

// NewSource picks a Source from a location string:
//
//	redis://<key>           RedisSource reading <key>
//	http://... https://...  HTTPSource
//	file://<path> or <path> FileSource
func NewSource(location string, deps SourceDeps) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("source location is required")
	}

	if key, ok := strings.CutPrefix(location, "redis://"); ok {
		if deps.Redis == nil {
			return nil, fmt.Errorf("redis source %q requires a redis client", key)
		}
		return NewRedisSource(deps.Redis, key)
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		client := deps.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: 10 * time.Second}
		}
		return NewHTTPSource(client, location), nil
	}
	path, _ := strings.CutPrefix(location, "file://")
	return NewFileSource(path), nil
}
