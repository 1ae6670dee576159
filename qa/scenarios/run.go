package scenarios

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/skypix/srcmeas/app"
	"github.com/skypix/srcmeas/config"
	"github.com/skypix/srcmeas/infra/metrics"
	"github.com/skypix/srcmeas/infra/stream"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	pub := stream.NewMockPublisher()

	field := sc.Field.ToField()
	img, err := field.Render(sc.Field.Seed)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	cfg := &config.Config{}
	cfg.Logging.SetDefaults()
	cfg.Measurement.SetDefaults()
	cfg.Stream.SetDefaults()
	cfg.Measurement.Background = field.Background
	shapeConf := map[string]any{}
	if sc.Measure.ShapeHalfWidth > 0 {
		shapeConf["half_width"] = sc.Measure.ShapeHalfWidth
	}
	fluxConf := map[string]any{}
	if sc.Measure.FluxRadius > 0 {
		fluxConf["radius"] = sc.Measure.FluxRadius
	}
	if v := field.Variance(); v > 0 {
		shapeConf["variance"] = v
		fluxConf["variance"] = v
	}
	cfg.Measurement.Shape.Conf = shapeConf
	cfg.Measurement.Flux.Conf = fluxConf

	svc, err := app.NewWithCollaborators(cfg, sc.Name, pub, sink)
	if err != nil {
		t.Fatalf("service: %v", err)
	}

	for i, src := range field.Sources {
		rec, err := svc.MeasureSource(img, i, src.X, src.Y)
		if err != nil {
			t.Errorf("source %d: %v", i, err)
			continue
		}
		if off := math.Hypot(rec.X-src.X, rec.Y-src.Y); off > sc.Expected.MaxCentroidOffset {
			t.Errorf("source %d centroid offset %.4f exceeds %.4f", i, off, sc.Expected.MaxCentroidOffset)
		}
		if sc.Expected.MaxEllipticity > 0 {
			if math.Abs(rec.E1) > sc.Expected.MaxEllipticity || math.Abs(rec.E2) > sc.Expected.MaxEllipticity {
				t.Errorf("source %d ellipticity (%.4f, %.4f) exceeds %.4f",
					i, rec.E1, rec.E2, sc.Expected.MaxEllipticity)
			}
		}
		if sc.Expected.MinFluxRatio > 0 {
			ratio := rec.Flux / src.Flux
			if ratio < sc.Expected.MinFluxRatio || ratio > sc.Expected.MaxFluxRatio {
				t.Errorf("source %d flux ratio %.4f outside [%.4f, %.4f]",
					i, ratio, sc.Expected.MinFluxRatio, sc.Expected.MaxFluxRatio)
			}
		}
	}

	svc.RecordRunSize(len(field.Sources))
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if got := pub.Published(); len(got) != len(field.Sources) {
		t.Errorf("scenario %s published %d records, want %d", sc.Name, len(got), len(field.Sources))
	}
	count, err := testutil.GatherAndCount(reg, "measurement_events_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count == 0 {
		t.Errorf("no measurement events recorded")
	}
}
