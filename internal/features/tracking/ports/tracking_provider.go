package ports

import (
	"context"

	"delhivery-tracker/internal/features/tracking/domain"
)

// TrackingProvider defines the interface for courier tracking implementations.
type TrackingProvider interface {
	// GetTracking retrieves the raw tracking payload for a given AWB number.
	GetTracking(ctx context.Context, awb string) (*domain.TrackingResponse, error)
}

// Presenter renders tracking results for the user.
type Presenter interface {
	// ShowReport renders the shipment summary and its scan history.
	ShowReport(report domain.Report)
	// ShowNotFound tells the user that the AWB has no shipment.
	ShowNotFound(awb string)
}

// Journal persists one record per reported shipment.
type Journal interface {
	// Append adds the entry after any existing content.
	Append(entry domain.JournalEntry) error
}
