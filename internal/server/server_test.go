package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/config"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/domain"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/http/handlers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/providers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/testutil"
)

func stubProviders(notify chan struct{}) []providers.DataProvider {
	var once sync.Once
	espn := testutil.NewStubProvider(domain.SourceESPN)
	espn.Scoreboard = func(ctx context.Context, day time.Time) ([]domain.Game, error) {
		if notify != nil {
			once.Do(func() { close(notify) })
		}
		return []domain.Game{testutil.SampleGame(domain.SourceESPN, "stub-1")}, nil
	}
	return []providers.DataProvider{espn, testutil.NewStubProvider(domain.SourceNCAA)}
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Sources: []string{"espn", "ncaa"}},
		Poller: config.PollerConfig{Enabled: true, Interval: 5 * time.Millisecond, Timeout: time.Second},
	}
}

func TestServerServesHealthAndScoreboard(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notify := make(chan struct{})
	srv, err := newServerWithProviders(testConfig(), nil, stubProviders(notify), metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.poller.Start(ctx)
	defer func() { _ = srv.poller.Stop(context.Background()) }()

	select {
	case <-notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for poller to fetch")
	}

	router := srv.Handler()

	healthRec := httptest.NewRecorder()
	router.ServeHTTP(healthRec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if healthRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", healthRec.Code)
	}

	gamesRec := httptest.NewRecorder()
	router.ServeHTTP(gamesRec, httptest.NewRequest(http.MethodGet, "/v1/scoreboard", nil))
	if gamesRec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /v1/scoreboard, got %d", gamesRec.Code)
	}

	var resp handlers.ScoreboardResponse
	if err := json.NewDecoder(gamesRec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode scoreboard response: %v", err)
	}
	if len(resp.Games) != 1 || resp.Games[0].ID != "stub-1" {
		t.Fatalf("unexpected games %+v", resp.Games)
	}
}

func TestServerReadyTracksPoller(t *testing.T) {
	cfg := testConfig()
	srv, err := newServerWithProviders(cfg, nil, stubProviders(nil), metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	cfg.Poller.Enabled = false
	srv, err = newServerWithProviders(cfg, nil, stubProviders(nil), metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.poller != nil {
		t.Fatalf("expected no poller when disabled")
	}
	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestServerMountsAdminWithToken(t *testing.T) {
	cfg := testConfig()
	cfg.AdminToken = "secret"
	srv, err := newServerWithProviders(cfg, nil, stubProviders(nil), metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/admin/sources", strings.NewReader(`{"sources":["ncaa","espn"]}`))
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	if got := srv.Connector().Sources(); got[0] != domain.SourceNCAA {
		t.Fatalf("expected ncaa promoted, got %v", got)
	}
}

func TestNewBuildsRealClients(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	srv, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got := srv.Connector().Sources()
	if len(got) != 2 || got[0] != domain.SourceESPN || got[1] != domain.SourceNCAA {
		t.Fatalf("expected espn,ncaa, got %v", got)
	}
}

func TestProviderFactoryBuildsEverySource(t *testing.T) {
	list := newProviderFactory(nil, nil).build(config.Config{})
	if len(list) != len(domain.KnownSources) {
		t.Fatalf("expected %d providers, got %d", len(domain.KnownSources), len(list))
	}
	for i, p := range list {
		if p.Source() != domain.KnownSources[i] {
			t.Fatalf("provider %d: expected %s, got %s", i, domain.KnownSources[i], p.Source())
		}
	}
}

func TestBuildConnectorHonorsPriority(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Sources = []string{" NCAA ", "espn"}

	conn, err := newProviderFactory(nil, nil).buildConnector(cfg, stubProviders(nil))
	if err != nil {
		t.Fatalf("build connector: %v", err)
	}
	if got := conn.Sources(); got[0] != domain.SourceNCAA || got[1] != domain.SourceESPN {
		t.Fatalf("expected ncaa,espn, got %v", got)
	}
}

func TestBuildConnectorFallsBackOnBadPriority(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	cfg := testConfig()
	cfg.Server.Sources = []string{"statcast"}

	conn, err := newProviderFactory(logger, nil).buildConnector(cfg, stubProviders(nil))
	if err != nil {
		t.Fatalf("build connector: %v", err)
	}
	if got := conn.Sources(); len(got) != 2 || got[0] != domain.SourceESPN {
		t.Fatalf("expected registration order, got %v", got)
	}
	if !strings.Contains(buf.String(), "invalid source priority") {
		t.Fatalf("expected warning, got %s", buf.String())
	}

	if _, err := newProviderFactory(nil, nil).buildConnector(cfg, nil); err == nil {
		t.Fatalf("expected error with no providers")
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics.Enabled = true
	srv, err := newServerWithProviders(cfg, nil, stubProviders(nil), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, _ := testutil.NewRecorderWithShutdown()
	srv, err := newServerWithProviders(testConfig(), nil, stubProviders(nil), rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Port: "9999"},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownWithoutPoller(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, nil)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, p)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if !strings.Contains(buf.String(), "failed to stop poller") {
		t.Fatalf("expected poller failure logged, got %s", buf.String())
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{}, &testutil.StubPoller{})

	stopCalled := make(chan struct{})
	srv.startServer(func() { close(stopCalled) })

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller started and stopped once, got %d/%d", plr.StartCalls, plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
