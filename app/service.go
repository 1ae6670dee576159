package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/skypix/srcmeas/config"
	"github.com/skypix/srcmeas/core/image"
	"github.com/skypix/srcmeas/core/measure"
	coremetrics "github.com/skypix/srcmeas/core/metrics"
	"github.com/skypix/srcmeas/core/model"
	"github.com/skypix/srcmeas/core/psf"
	"github.com/skypix/srcmeas/infra/logger"
	"github.com/skypix/srcmeas/infra/metrics"
	"github.com/skypix/srcmeas/infra/stream"
	"github.com/skypix/srcmeas/internal/eventbus"
)

// forwardBuffer sizes the stream subscription; records beyond it are
// dropped when the broker cannot keep up.
const forwardBuffer = 1024

// Service orchestrates measurement of sources against telemetry sinks and
// the measurement stream.
type Service struct {
	Run model.RunInfo

	centroider   measure.Centroider
	shaper       measure.ShapeMeasurer
	photometer   measure.FluxMeasurer
	centroidName string
	shapeName    string
	fluxName     string

	psf        *psf.PSF
	defects    image.DefectList
	background float64

	sink     coremetrics.MeasurementSink
	bus      *eventbus.Bus[model.SourceRecord]
	paho     *stream.PahoPublisher
	pubDone  chan struct{}
	promAddr string
	log      logger.Logger
}

// New creates a Service from the configuration, connecting the stream
// publisher when one is enabled.
func New(cfg *config.Config, field string) (*Service, error) {
	if !cfg.Stream.Enabled {
		return NewWithPublisher(cfg, field, nil)
	}
	p, err := stream.NewPahoPublisher(cfg.Stream.MQTT)
	if err != nil {
		return nil, fmt.Errorf("stream publisher: %w", err)
	}
	svc, err := NewWithPublisher(cfg, field, p)
	if err != nil {
		p.Disconnect()
		return nil, err
	}
	svc.paho = p
	return svc, nil
}

// NewWithPublisher creates a Service delivering records to the provided
// publisher. A nil publisher disables the stream; tests and QA runs pass a
// MockPublisher here.
func NewWithPublisher(cfg *config.Config, field string, pub stream.Publisher) (*Service, error) {
	return NewWithCollaborators(cfg, field, pub, nil)
}

// NewWithCollaborators additionally accepts an explicit metrics sink, for
// callers that inspect telemetry afterwards. A nil sink is built from the
// configuration.
func NewWithCollaborators(cfg *config.Config, field string, pub stream.Publisher, sink coremetrics.MeasurementSink) (*Service, error) {
	if err := cfg.Logging.Apply(); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	m := cfg.Measurement
	centroider, err := measure.NewCentroider(m.Centroid.Name, m.Centroid.Conf)
	if err != nil {
		return nil, fmt.Errorf("centroider %q: %w", m.Centroid.Name, err)
	}
	shaper, err := measure.NewShapeMeasurer(m.Shape.Name, m.Shape.Conf)
	if err != nil {
		return nil, fmt.Errorf("shape measurer %q: %w", m.Shape.Name, err)
	}
	photometer, err := measure.NewFluxMeasurer(m.Flux.Name, m.Flux.Conf)
	if err != nil {
		return nil, fmt.Errorf("flux measurer %q: %w", m.Flux.Name, err)
	}
	response, err := psf.New(m.PSF.Name, m.PSF.Width, m.PSF.Height, m.PSF.P0, m.PSF.P1, m.PSF.P2)
	if err != nil {
		return nil, fmt.Errorf("psf %q: %w", m.PSF.Name, err)
	}
	if sink == nil {
		sink, err = coremetrics.NewSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
	}

	svc := &Service{
		Run:          model.NewRunInfo(field),
		centroider:   centroider,
		shaper:       shaper,
		photometer:   photometer,
		centroidName: m.Centroid.Name,
		shapeName:    m.Shape.Name,
		fluxName:     m.Flux.Name,
		psf:          response,
		defects:      m.Defects,
		background:   m.Background,
		sink:         sink,
		bus:          eventbus.New[model.SourceRecord](),
		promAddr:     cfg.Metrics.PrometheusAddr,
		log:          logg,
	}
	if pub != nil {
		svc.startForwarder(pub)
	}
	logg.Infof("run %s: algorithms %s/%s/%s, psf %s",
		svc.Run.ID, m.Centroid.Name, m.Shape.Name, m.Flux.Name, m.PSF.Name)
	return svc, nil
}

func (s *Service) startForwarder(pub stream.Publisher) {
	ch := s.bus.SubscribeBuffered(forwardBuffer)
	s.pubDone = make(chan struct{})
	go func() {
		defer close(s.pubDone)
		for rec := range ch {
			if err := pub.PublishMeasurement(rec); err != nil {
				s.log.Errorf("publish source %d: %v", rec.SourceID, err)
			}
		}
	}()
}

// Start launches the /metrics endpoint when one is configured. It returns
// immediately; the server stops when ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	if s.promAddr == "" {
		return
	}
	go func() {
		if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
			s.log.Errorf("prom server: %v", err)
		}
	}()
}

// MeasureSource measures one source at the supplied position: centroid
// first, then shape and flux at the refined position. Shape and flux
// failures leave their fields zero and set a failure flag; a centroid
// failure aborts the source. The record is published on the stream and all
// outcomes are recorded on the metrics sink.
func (s *Service) MeasureSource(img image.View, sourceID int, x, y float64) (model.SourceRecord, error) {
	events := make([]coremetrics.MeasurementEvent, 0, 3)
	lats := make([]coremetrics.MeasurementLatency, 0, 3)
	rec := model.SourceRecord{
		RunID:      s.Run.ID,
		SourceID:   sourceID,
		MeasuredAt: time.Now().UTC(),
	}

	t0 := time.Now()
	cen, err := measure.ApplyCentroid(s.centroider, img, x, y, s.psf, s.background)
	s.observe(&events, &lats, s.centroidName, sourceID, 0, time.Since(t0), err)
	if err != nil {
		s.flush(events, lats)
		return model.SourceRecord{}, fmt.Errorf("centroid source %d: %w", sourceID, err)
	}
	rec.X, rec.Y = cen.X, cen.Y
	rec.XErr, rec.YErr = finite(cen.XErr), finite(cen.YErr)

	t0 = time.Now()
	shp, err := measure.ApplyShape(s.shaper, img, cen.X, cen.Y, s.psf, s.background)
	shapeFlags := 0
	if err != nil {
		rec.Flags |= model.FlagShapeFailed
		s.log.Warnf("shape source %d: %v", sourceID, err)
	} else {
		rec.M0 = finite(shp.M0())
		rec.Mxx = finite(shp.Mxx())
		rec.Mxy = finite(shp.Mxy())
		rec.Myy = finite(shp.Myy())
		rec.E1 = finite(shp.E1())
		rec.E2 = finite(shp.E2())
		rec.Rms = finite(shp.Rms())
		shapeFlags = shp.Flags()
		rec.Flags |= shapeFlags
	}
	s.observe(&events, &lats, s.shapeName, sourceID, shapeFlags, time.Since(t0), err)

	t0 = time.Now()
	flux, err := measure.ApplyFlux(s.photometer, img, cen.X, cen.Y, s.psf, s.background)
	if err != nil {
		rec.Flags |= model.FlagFluxFailed
		s.log.Warnf("flux source %d: %v", sourceID, err)
	} else {
		rec.Flux = finite(flux.Value)
		rec.FluxErr = finite(flux.Err)
	}
	s.observe(&events, &lats, s.fluxName, sourceID, 0, time.Since(t0), err)

	ix, _ := image.PositionToIndex(cen.X)
	iy, _ := image.PositionToIndex(cen.Y)
	rec.Defective = s.defects.Overlaps(ix-1, iy-1, ix+1, iy+1)

	s.flush(events, lats)
	s.bus.Publish(rec)
	return rec, nil
}

// RecordRunSize reports how many sources the run measured, on sinks that
// track it.
func (s *Service) RecordRunSize(n int) {
	if rec, ok := s.sink.(coremetrics.SourceCountRecorder); ok {
		if err := rec.RecordSourceCount(n); err != nil {
			s.log.Errorf("record run size: %v", err)
		}
	}
}

// Records exposes the bus for consumers beyond the stream publisher.
func (s *Service) Records() *eventbus.Bus[model.SourceRecord] { return s.bus }

// Close drains the stream subscription and disconnects the publisher.
func (s *Service) Close() error {
	s.bus.Close()
	if s.pubDone != nil {
		<-s.pubDone
	}
	if s.paho != nil {
		s.paho.Disconnect()
	}
	return nil
}

func (s *Service) observe(events *[]coremetrics.MeasurementEvent, lats *[]coremetrics.MeasurementLatency,
	algorithm string, sourceID, flags int, d time.Duration, err error) {
	outcome := measure.Kind(err)
	*events = append(*events, coremetrics.MeasurementEvent{
		RunID:     s.Run.ID,
		SourceID:  sourceID,
		Algorithm: algorithm,
		Outcome:   outcome,
		Flags:     flags,
		Time:      time.Now().UTC(),
	})
	*lats = append(*lats, coremetrics.MeasurementLatency{
		Algorithm: algorithm,
		Outcome:   outcome,
		Latency:   d,
	})
}

// flush records telemetry; sink failures are logged, never surfaced.
func (s *Service) flush(events []coremetrics.MeasurementEvent, lats []coremetrics.MeasurementLatency) {
	if err := s.sink.RecordMeasurements(events); err != nil {
		s.log.Errorf("record events: %v", err)
	}
	if err := s.sink.RecordLatencies(lats); err != nil {
		s.log.Errorf("record latencies: %v", err)
	}
}

// finite clamps NaN and infinities to 0 so records stay JSON-encodable.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
