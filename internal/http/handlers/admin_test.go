package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/testutil"
)

type stubAdmin struct {
	order   []domain.Source
	setErr  error
	cleared int
}

func (s *stubAdmin) Sources() []domain.Source { return s.order }

func (s *stubAdmin) SetSources(sources []domain.Source) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.order = sources
	return nil
}

func (s *stubAdmin) ClearAllCaches() { s.cleared++ }

func adminRequest(method, path, body, token string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRequiresAuth(t *testing.T) {
	admin := &stubAdmin{}
	h := NewAdminHandler(admin, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.ClearCache), adminRequest(http.MethodPost, "/admin/cache/clear", "", token))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
	if admin.cleared != 0 {
		t.Fatalf("expected unauthorized requests to leave caches alone")
	}
}

func TestAdminDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubAdmin{}, "", nil)
	if h.Enabled() {
		t.Fatalf("expected admin disabled without a token")
	}
	rr := testutil.ServeRequest(http.HandlerFunc(h.Sources), adminRequest(http.MethodGet, "/admin/sources", "", ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	var nilHandler *AdminHandler
	if nilHandler.Enabled() {
		t.Fatalf("expected nil admin handler to report disabled")
	}
}

func TestAdminSources(t *testing.T) {
	admin := &stubAdmin{order: []domain.Source{domain.SourceESPN, domain.SourceNCAA}}
	h := NewAdminHandler(admin, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Sources), adminRequest(http.MethodGet, "/admin/sources", "", "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp SourcesPayload
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Sources) != 2 || resp.Sources[0] != domain.SourceESPN {
		t.Fatalf("unexpected sources %+v", resp.Sources)
	}
}

func TestAdminUpdateSources(t *testing.T) {
	admin := &stubAdmin{order: []domain.Source{domain.SourceESPN, domain.SourceNCAA}}
	logger, buf := testutil.NewBufferLogger()
	h := NewAdminHandler(admin, "secret", logger)

	rr := testutil.ServeRequest(http.HandlerFunc(h.UpdateSources),
		adminRequest(http.MethodPut, "/admin/sources", `{"sources":["ncaa","espn"]}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp SourcesPayload
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Sources) != 2 || resp.Sources[0] != domain.SourceNCAA {
		t.Fatalf("expected ncaa first, got %+v", resp.Sources)
	}
	if !strings.Contains(buf.String(), "sources=ncaa,espn") {
		t.Fatalf("expected update logged, got %s", buf.String())
	}
}

func TestAdminUpdateSourcesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setErr error
	}{
		{name: "malformed json", body: `{"sources":`},
		{name: "unknown field", body: `{"order":["espn"]}`},
		{name: "rejected by connector", body: `{"sources":["statcast"]}`, setErr: errors.New(`unknown source: "statcast"`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := &stubAdmin{order: []domain.Source{domain.SourceESPN}, setErr: tt.setErr}
			h := NewAdminHandler(admin, "secret", nil)

			rr := testutil.ServeRequest(http.HandlerFunc(h.UpdateSources),
				adminRequest(http.MethodPut, "/admin/sources", tt.body, "secret"))
			testutil.AssertStatus(t, rr, http.StatusBadRequest)
			if len(admin.order) != 1 || admin.order[0] != domain.SourceESPN {
				t.Fatalf("expected order unchanged, got %+v", admin.order)
			}
		})
	}
}

func TestAdminClearCache(t *testing.T) {
	admin := &stubAdmin{}
	h := NewAdminHandler(admin, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.ClearCache), adminRequest(http.MethodPost, "/admin/cache/clear", "", "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if admin.cleared != 1 {
		t.Fatalf("expected caches cleared once, got %d", admin.cleared)
	}
}
