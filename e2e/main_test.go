package e2e

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs the feature files against a viewer at VIEWER_BASE_URL.
// The server must be started with ACTIVITY_SOURCE pointing at a log that
// contains the rows named in the features.
func TestFeatures(t *testing.T) {
	if os.Getenv("VIEWER_BASE_URL") == "" {
		t.Skip("VIEWER_BASE_URL not set")
	}

	suite := godog.TestSuite{
		ScenarioInitializer: func(ctx *godog.ScenarioContext) {
			tc := NewTestContext()
			ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
				tc.reset()
				return ctx, nil
			})
			RegisterSteps(ctx, tc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("feature tests failed")
	}
}
