package e2e

import (
	"github.com/cucumber/godog"

	"logsviewer/e2e/steps/logs"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the viewer is running$`, tc.viewerIsRunning)
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal (\d+)$`, tc.responseFieldShouldEqualNumber)
	ctx.Step(`^the response error should be "([^"]*)"$`, tc.responseErrorShouldBe)

	logs.RegisterSteps(ctx, tc)
}
