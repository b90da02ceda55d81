package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/okian/tabellone/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.EventQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.FormLength, convey.ShouldEqual, 5)
			convey.So(cfg.MaxStandingsLimit, convey.ShouldEqual, 100)
			convey.So(cfg.ArchivePath, convey.ShouldBeEmpty)
			convey.So(cfg.ShutdownTimeout, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsBuckets, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with one bad field", t, func() {
		cases := map[string]func(c *config.Config){
			"empty addr":         func(c *config.Config) { c.Addr = " " },
			"zero queue":         func(c *config.Config) { c.EventQueueSize = 0 },
			"zero workers":       func(c *config.Config) { c.WorkerCount = 0 },
			"negative dedupe":    func(c *config.Config) { c.DedupeSize = -1 },
			"zero form":          func(c *config.Config) { c.FormLength = 0 },
			"zero limit":         func(c *config.Config) { c.MaxStandingsLimit = 0 },
			"zero timeout":       func(c *config.Config) { c.ShutdownTimeout = 0 },
			"zero refresh":       func(c *config.Config) { c.MetricsRefreshInterval = 0 },
			"unsorted buckets":   func(c *config.Config) { c.MetricsBuckets = []float64{5, 1} },
			"repeated buckets":   func(c *config.Config) { c.MetricsBuckets = []float64{1, 1} },
			"unknown log format": func(c *config.Config) { c.LogFormat = "xml" },
			"unknown log level":  func(c *config.Config) { c.LogLevel = "verbose" },
		}
		for name, mutate := range cases {
			convey.Convey("Then "+name+" is rejected", func() {
				cfg := config.New(context.Background())
				mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})

	convey.Convey("Given an unbounded dedupe cache", t, func() {
		cfg := config.New(context.Background())
		cfg.DedupeSize = 0
		convey.So(cfg.Validate(), convey.ShouldBeNil)
	})
}
