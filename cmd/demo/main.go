// Command demo wires the effect engine's packages together end to end:
// load configuration, load a content catalog, apply a couple of
// effects to a sample entity, and drive the tick loop while exposing
// Prometheus metrics and a cue websocket feed. It exists to prove the
// pieces fit, not as a game in its own right (spec.md's CLI/sample
// harness is deliberately out of scope beyond this).
package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"effectkit/pkg/broadcast"
	"effectkit/pkg/config"
	"effectkit/pkg/content"
	"effectkit/pkg/cues"
	"effectkit/pkg/effects"
	"effectkit/pkg/tags"
	"effectkit/pkg/telemetry"
)

func main() {
	metricsAddr := flag.String("metrics-addr", ":9090", "address to serve /metrics and /cues on")
	ticks := flag.Int("ticks", 5, "number of 1-second Update ticks to simulate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	if level, parseErr := logrus.ParseLevel(cfg.LogLevel); parseErr == nil {
		logrus.SetLevel(level)
	}

	var metrics *telemetry.EngineMetrics
	if cfg.MetricsEnabled {
		metrics = telemetry.NewEngineMetrics()
	}

	cat, err := content.Load(cfg.ContentDir)
	if err != nil {
		metrics.RecordContentLoad("failure")
		logrus.WithError(err).Fatal("loading content catalog")
	}
	metrics.RecordContentLoad("success")

	cueManager := cues.NewManager()

	hub := broadcast.NewHub(broadcast.Config{
		BufferSize:    cfg.CueBroadcastBufferSize,
		RatePerSecond: cfg.CueBroadcastRatePerSecond,
	})
	cueManager.RegisterContainer(allTags(cat), hub)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/cues", hub)
	go func() {
		logrus.WithField("addr", *metricsAddr).Info("serving /metrics and /cues")
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			logrus.WithError(err).Error("demo http server stopped")
		}
	}()

	player := newDemoEntity(cfg.MaxAttributeCascadePasses)
	if _, err := player.attrs.Define("health", 100, 0, 100); err != nil {
		logrus.WithError(err).Fatal("defining health attribute")
	}
	if _, err := player.attrs.Define("strength", 10, 0, 999); err != nil {
		logrus.WithError(err).Fatal("defining strength attribute")
	}

	mgr := effects.NewManager(player, cueManager)

	applyNamed(mgr, cat, "poison_dot", metrics)
	applyNamed(mgr, cat, "regen_buff", metrics)

	for i := 0; i < *ticks; i++ {
		start := time.Now()
		if err := mgr.Update(1.0); err != nil {
			logrus.WithError(err).Error("update failed")
		}
		metrics.ObserveUpdateDuration(time.Since(start).Seconds())

		health, _ := player.attrs.Get("health")
		fmt.Printf("tick %d: health=%.1f\n", i+1, health.Current())
	}
}

func applyNamed(mgr *effects.Manager, cat *content.Catalog, name string, metrics *telemetry.EngineMetrics) {
	data, err := cat.EffectByName(name)
	if err != nil {
		logrus.WithError(err).WithField("effect", name).Warn("skipping unknown effect")
		return
	}
	effect := effects.NewEffect(data, effects.Ownership{SourceKey: "demo", TargetKey: "demo"}, 1)
	if _, err := mgr.Apply(effect, nil); err != nil {
		metrics.RecordApplied(name, "denied")
		logrus.WithError(err).WithField("effect", name).Warn("apply denied")
		return
	}
	metrics.RecordApplied(name, "applied")
}

// allTags returns every tag the catalog's registry knows about, so the
// demo's cue broadcaster observes everything rather than a curated
// subset a real host would pick deliberately.
func allTags(cat *content.Catalog) tags.Container {
	c := tags.Container{}
	reg := cat.Registry
	for i := 0; i < reg.Count(); i++ {
		if t, ok := reg.TagByNetIndex(uint16(i)); ok {
			c.Add(t)
		}
	}
	return c
}
