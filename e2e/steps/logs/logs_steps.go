package logs

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, headers map[string]string) error
	DecodeResponse(v any) error
	GetAdminToken() string
}

// RegisterSteps registers activity log step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &logsSteps{tc: tc}

	ctx.Step(`^I request the logs$`, steps.requestLogs)
	ctx.Step(`^I search the logs for "([^"]*)"$`, steps.searchLogs)
	ctx.Step(`^I request logs page (-?\d+) in set (-?\d+)$`, steps.requestPage)
	ctx.Step(`^I reload the logs as an admin$`, steps.reloadAsAdmin)
	ctx.Step(`^I reload the logs without a token$`, steps.reloadWithoutToken)

	ctx.Step(`^every row should contain "([^"]*)" in a searchable field$`, steps.everyRowShouldContain)
	ctx.Step(`^at most (\d+) rows should be shown$`, steps.atMostRowsShown)
	ctx.Step(`^the highlighted segments should all equal "([^"]*)" ignoring case$`, steps.highlightsShouldEqual)
	ctx.Step(`^the pager should show pages "([^"]*)"$`, steps.pagerShouldShow)
}

type logsSteps struct {
	tc TestContext
}

type segment struct {
	Text  string `json:"text"`
	Match bool   `json:"match"`
}

type row struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id"`
	Actor      string               `json:"actor"`
	ActionType string               `json:"action_type"`
	Details    string               `json:"details"`
	Category   string               `json:"category"`
	CategoryID string               `json:"cat_id"`
	Date       string               `json:"date"`
	Segments   map[string][]segment `json:"segments"`
}

type logsPage struct {
	Rows  []row `json:"rows"`
	Pager struct {
		Pages []int `json:"pages"`
	} `json:"pager"`
}

func (s *logsSteps) page() (logsPage, error) {
	var p logsPage
	err := s.tc.DecodeResponse(&p)
	return p, err
}

func (s *logsSteps) requestLogs(ctx context.Context) error {
	return s.tc.GET("/logs")
}

func (s *logsSteps) searchLogs(ctx context.Context, term string) error {
	return s.tc.GET("/logs?search=" + url.QueryEscape(term))
}

func (s *logsSteps) requestPage(ctx context.Context, page, set int) error {
	return s.tc.GET(fmt.Sprintf("/logs?page=%d&set=%d", page, set))
}

func (s *logsSteps) reloadAsAdmin(ctx context.Context) error {
	return s.tc.POST("/admin/logs/reload", map[string]string{"X-Admin-Token": s.tc.GetAdminToken()})
}

func (s *logsSteps) reloadWithoutToken(ctx context.Context) error {
	return s.tc.POST("/admin/logs/reload", nil)
}

func (s *logsSteps) everyRowShouldContain(ctx context.Context, term string) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	for _, r := range p.Rows {
		fields := []string{r.ID, r.UserID, r.Actor, r.ActionType, r.Details, r.Category, r.CategoryID, r.Date}
		found := false
		for _, f := range fields {
			if strings.Contains(f, term) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("row %s does not contain %q", r.ID, term)
		}
	}
	return nil
}

func (s *logsSteps) atMostRowsShown(ctx context.Context, n int) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	if len(p.Rows) > n {
		return fmt.Errorf("expected at most %d rows, got %d", n, len(p.Rows))
	}
	return nil
}

func (s *logsSteps) highlightsShouldEqual(ctx context.Context, term string) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	for _, r := range p.Rows {
		for field, segs := range r.Segments {
			for _, seg := range segs {
				if seg.Match && !strings.EqualFold(seg.Text, term) {
					return fmt.Errorf("row %s field %s highlights %q", r.ID, field, seg.Text)
				}
			}
		}
	}
	return nil
}

func (s *logsSteps) pagerShouldShow(ctx context.Context, pages string) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	got := make([]string, 0, len(p.Pager.Pages))
	for _, n := range p.Pager.Pages {
		got = append(got, fmt.Sprint(n))
	}
	if strings.Join(got, ",") != pages {
		return fmt.Errorf("expected pager pages %q, got %q", pages, strings.Join(got, ","))
	}
	return nil
}
