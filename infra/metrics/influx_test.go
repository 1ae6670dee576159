package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/skypix/srcmeas/core/metrics"
)

func TestInfluxSink_RecordMeasurements(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	ev := coremetrics.MeasurementEvent{
		RunID:     "run-1",
		SourceID:  7,
		Algorithm: "centroid.naive",
		Outcome:   "ok",
		Flags:     0,
		Time:      now,
	}
	if err := sink.RecordMeasurements([]coremetrics.MeasurementEvent{ev}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("measurement_event").
		AddTag("run_id", "run-1").
		AddTag("algorithm", "centroid.naive").
		AddTag("outcome", "ok").
		AddField("source_id", 7).
		AddField("flags", 0).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if strings.TrimSpace(body) != expected {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_RecordLatencies(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, strings.TrimSpace(string(b)))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	recs := []coremetrics.MeasurementLatency{
		{Algorithm: "shape.naive", Outcome: "ok", Latency: 1500 * time.Microsecond},
	}
	if err := sink.RecordLatencies(recs); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if len(bodies) != 1 {
		t.Fatalf("expected one write, got %d", len(bodies))
	}
	if !strings.Contains(bodies[0], "measurement_latency") ||
		!strings.Contains(bodies[0], "algorithm=shape.naive") ||
		!strings.Contains(bodies[0], "latency_ms=1.5") {
		t.Errorf("unexpected body: %s", bodies[0])
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatal("expected NopSink on failing health check")
	}
	if !called {
		t.Fatal("health endpoint not called")
	}
}
