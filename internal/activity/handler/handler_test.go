package handler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"logsviewer/internal/activity/handler/mocks"
	"logsviewer/internal/activity/ingest"
	"logsviewer/internal/activity/models"
	"logsviewer/internal/activity/pager"
	"logsviewer/internal/activity/service"
	"logsviewer/internal/activity/state"
	"logsviewer/internal/activity/store"
	"logsviewer/pkg/platform/middleware/admin"
	"logsviewer/pkg/testutil"
)

const adminToken = "secret-token"

// =============================================================================
// Activity Handler Test Suite
// =============================================================================
// Justification for unit tests: the handler owns query parameter validation,
// admin gating of reloads and the JSON shape of pages, none of which the
// service tests cover.

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	r := chi.NewRouter()
	New(s.service, logger, adminToken).Register(r)
	s.router = r
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func samplePage() service.Page {
	rec := models.LogRecord{
		ID: "1", UserID: "4", RawAction: "Fawzy, changed status active",
		Category: "Orders", CategoryID: "9", Date: "2024-01-01",
		Actor: "Fawzy", ActionType: "changed", Details: "changed status active",
	}
	return service.Page{
		View: state.View{
			Search:          "active",
			Page:            1,
			TotalPages:      1,
			TotalRecords:    3,
			FilteredRecords: 1,
			Rows:            []models.LogRecord{rec},
			Window:          pager.NewWindow(0, 1, pager.PagesPerSet),
		},
		Rows: []service.Row{{
			Record: rec,
			Avatar: "/images/instructor_fawzy.jpg",
			Highlights: service.Highlights{
				Details: []models.Segment{{Text: "changed status "}, {Text: "active", Match: true}},
				Actor:   []models.Segment{{Text: "Fawzy"}},
			},
		}},
	}
}

// =============================================================================
// GET /logs
// =============================================================================

func (s *HandlerSuite) TestListLogs() {
	s.Run("passes parsed query and renders page", func() {
		s.service.EXPECT().
			Query(gomock.Any(), service.Query{Search: "active", Page: 1, Set: 0}).
			Return(samplePage())

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/logs?search=active"))
		testutil.AssertStatusOK(s.T(), rr)

		resp := testutil.UnmarshalResponse[LogsResponse](s.T(), rr)
		s.Equal(1, resp.Page)
		s.Equal(1, resp.TotalPages)
		s.Equal(3, resp.TotalRecords)
		s.Equal(1, resp.FilteredRecords)
		s.Equal([]int{1}, resp.Pager.Pages)
		s.False(resp.Pager.HasNext)
		s.Require().Len(resp.Rows, 1)

		row := resp.Rows[0]
		s.Equal("Fawzy", row.Actor)
		s.Equal("changed", row.ActionType)
		s.Equal("Fawzy, changed status active", row.RawAction)
		s.Equal("/images/instructor_fawzy.jpg", row.Avatar)
		s.Equal([]models.Segment{{Text: "changed status "}, {Text: "active", Match: true}}, row.Segments.Details)
	})

	s.Run("page and set are forwarded", func() {
		s.service.EXPECT().
			Query(gomock.Any(), service.Query{Page: 5, Set: 1}).
			Return(service.Page{View: state.View{Page: 5}})

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/logs?page=5&set=1"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "page", float64(5))
	})

	s.Run("search term is used verbatim", func() {
		s.service.EXPECT().
			Query(gomock.Any(), service.Query{Search: " Aya ", Page: 1}).
			Return(service.Page{})

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/logs?search=%20Aya%20"))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("empty page renders empty arrays", func() {
		s.service.EXPECT().Query(gomock.Any(), gomock.Any()).Return(service.Page{
			View: state.View{Page: 1, Window: pager.NewWindow(0, 0, pager.PagesPerSet)},
		})

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/logs"))
		testutil.AssertStatusOK(s.T(), rr)
		s.Contains(rr.Body.String(), `"rows":[]`)
		s.Contains(rr.Body.String(), `"pages":[]`)
	})

	for _, path := range []string{"/logs?page=0", "/logs?page=-2", "/logs?page=two", "/logs?set=-1", "/logs?set=x"} {
		s.Run("rejects "+path, func() {
			rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, path))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
		})
	}
}

// =============================================================================
// POST /admin/logs/reload
// =============================================================================

func (s *HandlerSuite) TestReload() {
	reload := func(token string) *httptest.ResponseRecorder {
		req := testutil.NewRequest(s.T(), http.MethodPost, "/admin/logs/reload")
		if token != "" {
			req.Header.Set(admin.HeaderAdminToken, token)
		}
		return testutil.DoRequest(s.router, req)
	}

	s.Run("requires admin token", func() {
		rr := reload("")
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("success returns no content", func() {
		s.service.EXPECT().Load(gomock.Any()).Return(service.LoadResult{Records: 12}, nil)
		rr := reload(adminToken)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("unavailable source returns 503", func() {
		s.service.EXPECT().Load(gomock.Any()).
			Return(service.LoadResult{}, fmt.Errorf("%w: http://x: timeout", ingest.ErrSourceUnavailable))
		rr := reload(adminToken)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "source_unavailable")
	})

	s.Run("missing columns returns 400", func() {
		s.service.EXPECT().Load(gomock.Any()).Return(service.LoadResult{}, ingest.ErrMissingColumns)
		rr := reload(adminToken)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

// =============================================================================
// GET /healthz
// =============================================================================

func (s *HandlerSuite) TestHealth() {
	s.Run("empty before first load", func() {
		s.service.EXPECT().Status().Return(store.Snapshot{})
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[HealthResponse](s.T(), rr)
		s.Equal("empty", resp.Status)
		s.Nil(resp.LoadedAt)
	})

	s.Run("reports loaded set", func() {
		loadedAt := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		s.service.EXPECT().Status().Return(store.Snapshot{Records: 85, Source: "file:Logs.csv", LoadedAt: loadedAt})
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
		resp := testutil.UnmarshalResponse[HealthResponse](s.T(), rr)
		s.Equal("ok", resp.Status)
		s.Equal(85, resp.Records)
		s.Require().NotNil(resp.LoadedAt)
		s.True(loadedAt.Equal(*resp.LoadedAt))
	})
}

// =============================================================================
// End to end through the real pipeline
// =============================================================================

func TestLogsEndToEnd(t *testing.T) {
	csv := "id,user_id,action,category,cat_id,date\n" +
		"1,4,\"Fawzy, changed status active\",Orders,9,2024-01-01\n" +
		"2,5,\"Aya, deleted course\",Courses,3,2024-01-02\n"
	path := filepath.Join(t.TempDir(), "Logs.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	src, err := ingest.NewSource(path, ingest.SourceDeps{})
	require.NoError(t, err)
	loader, err := ingest.NewLoader(src, ingest.WithLoaderLogger(logger))
	require.NoError(t, err)
	svc, err := service.New(loader, store.NewInMemoryStore(), service.WithLogger(logger))
	require.NoError(t, err)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	New(svc, logger, "").Register(r)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/logs?search=Aya"))
	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[LogsResponse](t, rr)

	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	require.Equal(t, "2", row.ID)
	require.Equal(t, "deleted", row.ActionType)
	require.Equal(t, "deleted course", row.Details)
	require.Equal(t, []models.Segment{{Text: "Aya", Match: true}}, row.Segments.Actor)
	require.Equal(t, 2, resp.TotalRecords)
	require.Equal(t, 1, resp.FilteredRecords)

	t.Run("huge page and set numbers are answered without failing", func(t *testing.T) {
		tests := []struct {
			path  string
			rows  int
			pages []int
		}{
			{path: "/logs?page=9223372036854775807", rows: 0, pages: []int{1}},
			{path: "/logs?set=9223372036854775807", rows: 2, pages: []int{}},
			{path: "/logs?page=9223372036854775807&set=4611686018427387904", rows: 0, pages: []int{}},
		}
		for _, tt := range tests {
			rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, tt.path))
			testutil.AssertStatusOK(t, rr)
			resp := testutil.UnmarshalResponse[LogsResponse](t, rr)
			require.Len(t, resp.Rows, tt.rows, tt.path)
			require.Equal(t, tt.pages, resp.Pager.Pages, tt.path)
			require.False(t, resp.Pager.HasNext, tt.path)
			require.Equal(t, 2, resp.TotalRecords, tt.path)
		}
	})

	reload := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodPost, "/admin/logs/reload"))
	testutil.AssertStatus(t, reload, http.StatusNoContent)
}
