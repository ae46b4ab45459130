package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delhivery-tracker/internal/core/logger"
	"delhivery-tracker/internal/features/tracking/domain"
	"delhivery-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

var (
	// ErrFetchFailed is returned when the tracking payload could not be retrieved.
	ErrFetchFailed = errors.New("tracking fetch failed")
	// ErrJournalFailed is returned when the tracking log could not be written.
	ErrJournalFailed = errors.New("tracking log write failed")
)

// TrackingService runs one lookup: fetch, present, then journal.
type TrackingService struct {
	provider  ports.TrackingProvider
	presenter ports.Presenter
	journal   ports.Journal
	zone      *time.Location
	now       func() time.Time
}

// Option customizes a TrackingService.
type Option func(*TrackingService)

// WithClock replaces the clock used when a shipment has no usable status time.
func WithClock(now func() time.Time) Option {
	return func(s *TrackingService) {
		s.now = now
	}
}

// NewTrackingService creates a new TrackingService. zone is the fixed display zone.
func NewTrackingService(provider ports.TrackingProvider, presenter ports.Presenter, journal ports.Journal, zone *time.Location, opts ...Option) *TrackingService {
	s := &TrackingService{
		provider:  provider,
		presenter: presenter,
		journal:   journal,
		zone:      zone,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track looks up the AWB and reports on it. When the payload holds no shipment
// the presenter shows a notice and nothing is journaled.
func (s *TrackingService) Track(ctx context.Context, awb string) error {
	log := logger.Get().With(zap.String("awb", awb))

	resp, err := s.provider.GetTracking(ctx, awb)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	shipment, ok := resp.FirstShipment()
	if !ok {
		log.Info("No shipment in tracking payload")
		s.presenter.ShowNotFound(awb)
		return nil
	}

	report := domain.BuildReport(*shipment, s.now(), s.zone)
	if report.StatusUsedFallback {
		log.Debug("Status time missing or unparsable, using current time")
	}

	s.presenter.ShowReport(report)

	if err := s.journal.Append(report.Entry()); err != nil {
		return fmt.Errorf("%w: %w", ErrJournalFailed, err)
	}

	log.Info("Tracking entry recorded",
		zap.Int("scans", len(report.Scans)),
		zap.Bool("slot", report.SlotLine != nil),
	)
	return nil
}
