package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/tabellone/internal/config"
	"github.com/okian/tabellone/pkg/logger"
	"github.com/okian/tabellone/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.New(context.Background())
	cfg.WorkerCount = 2
	cfg.EventQueueSize = 16
	cfg.MaxStandingsLimit = 5
	cfg.ArchivePath = filepath.Join(t.TempDir(), "matches.db")
	return cfg
}

func TestServerWiring(t *testing.T) {
	convey.Convey("Given a started service behind the mux", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)
		svc := newService(cfg)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		mux := newMux(ctx, svc, cfg)

		convey.Convey("When a match is posted", func() {
			body := `{"event_id":"m1","tournament_id":"serie-a","sport":"calcio","home_team":"Roma",` +
				`"away_team":"Lazio","home_score":1,"away_score":1,"ts":"2025-09-14T18:00:00Z"}`
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(body)))
			convey.So(w.Code, convey.ShouldEqual, http.StatusAccepted)

			convey.Convey("Then the standings eventually show both teams with a draw", func() {
				var got string
				for i := 0; i < 100; i++ {
					r := httptest.NewRecorder()
					mux.ServeHTTP(r, httptest.NewRequest(http.MethodGet, "/standings/serie-a", http.NoBody))
					if r.Code == http.StatusOK {
						got = r.Body.String()
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				convey.So(got, convey.ShouldContainSubstring, `"team":"Lazio"`)
				convey.So(got, convey.ShouldContainSubstring, `"drawn":1`)
			})
		})

		convey.Convey("When the configured limit is exceeded", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/standings/serie-a?limit=6", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusBadRequest)
		})

		convey.Convey("When the docs are requested", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("When service metrics are refreshed", func() {
			convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
		})
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	convey.Convey("Given a config on a free port", t, func() {
		cfg := testConfig(t)
		cfg.Addr = "127.0.0.1:0"
		cfg.ShutdownTimeout = time.Second
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- run(ctx, cfg) }()
		time.Sleep(50 * time.Millisecond)
		cancel()

		convey.Convey("Then run returns without error", func() {
			select {
			case err := <-done:
				convey.So(err, convey.ShouldBeNil)
			case <-time.After(5 * time.Second):
				convey.So("run did not stop", convey.ShouldBeEmpty)
			}
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	convey.Convey("Given metrics settings in the config", t, func() {
		convey.Reset(func() { metrics.Configure() })
		cfg := testConfig(t)
		cfg.MetricsBuckets = []float64{1, 10, 100}
		cfg.MetricsRefreshInterval = 250 * time.Millisecond

		convey.Convey("When the global manager is configured from them", func() {
			metrics.Configure(metricsOptions(cfg)...)
			metrics.RecordWorkerProcessingLatency(5)

			convey.Convey("Then the interval and buckets follow the config", func() {
				convey.So(metrics.RefreshInterval(), convey.ShouldEqual, 250*time.Millisecond)
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				var bounds []float64
				for _, f := range families {
					if f.GetName() == "tabellone_standings_worker_processing_latency_milliseconds" {
						for _, b := range f.GetMetric()[0].GetHistogram().GetBucket() {
							bounds = append(bounds, b.GetUpperBound())
						}
					}
				}
				convey.So(bounds, convey.ShouldResemble, []float64{1, 10, 100})
			})
		})

		convey.Convey("When collection is disabled", func() {
			cfg.MetricsEnabled = false
			metrics.Configure(metricsOptions(cfg)...)
			metrics.RecordMatchDuplicate()

			convey.Convey("Then the registry stays empty", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				for _, f := range families {
					if f.GetName() == "tabellone_standings_matches_duplicate_total" {
						convey.So(f.GetMetric()[0].GetCounter().GetValue(), convey.ShouldEqual, 0)
					}
				}
			})
		})
	})
}
