package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"delhivery-tracker/internal/features/tracking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var ist = time.FixedZone("IST", 5*3600+30*60)

// mockTrackingProvider is a mock implementation of TrackingProvider for testing.
type mockTrackingProvider struct {
	returnResponse *domain.TrackingResponse
	returnError    error
	calls          []string
}

// GetTracking implements TrackingProvider.
func (m *mockTrackingProvider) GetTracking(ctx context.Context, awb string) (*domain.TrackingResponse, error) {
	m.calls = append(m.calls, awb)
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.returnResponse, nil
}

// mockPresenter records what was shown.
type mockPresenter struct {
	reports  []domain.Report
	notFound []string
}

// ShowReport implements Presenter.
func (m *mockPresenter) ShowReport(report domain.Report) {
	m.reports = append(m.reports, report)
}

// ShowNotFound implements Presenter.
func (m *mockPresenter) ShowNotFound(awb string) {
	m.notFound = append(m.notFound, awb)
}

// mockJournal records appended entries.
type mockJournal struct {
	entries     []domain.JournalEntry
	returnError error
}

// Append implements Journal.
func (m *mockJournal) Append(entry domain.JournalEntry) error {
	if m.returnError != nil {
		return m.returnError
	}
	m.entries = append(m.entries, entry)
	return nil
}

func mustResponse(t *testing.T, payload string) *domain.TrackingResponse {
	t.Helper()
	var resp domain.TrackingResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

// TestTrackingService_Track_Success verifies the report is shown and journaled.
func TestTrackingService_Track_Success(t *testing.T) {
	provider := &mockTrackingProvider{returnResponse: mustResponse(t, `{
  "data": [{
    "awb": "1490811234567",
    "status": {"status": "Delivered", "statusDateTime": "2024-03-15T10:30:00+00:00"},
    "deliveryDate": "2024-03-15",
    "slot": {"date": "15 Mar", "from": "10:00", "to": "14:00"},
    "trackingStates": [
      {"scans": [{"cityLocation": "Pune_DC", "scan": "Dispatched", "scanNslRemark": "Out for delivery"}]},
      {"scans": [{"cityLocation": "Pune_DC", "scan": "Delivered", "scanNslRemark": "Delivered to consignee"}]}
    ]
  }]
}`)}
	presenter := &mockPresenter{}
	journal := &mockJournal{}

	svc := NewTrackingService(provider, presenter, journal, ist)
	err := svc.Track(context.Background(), "1490811234567")

	require.NoError(t, err)
	assert.Equal(t, []string{"1490811234567"}, provider.calls)
	require.Len(t, presenter.reports, 1)
	assert.Empty(t, presenter.notFound)

	require.Len(t, journal.entries, 1)
	entry := journal.entries[0]
	assert.Equal(t, "15/03/24 04:00 PM", entry.Timestamp)
	assert.Equal(t, "1490811234567", entry.AWB)
	assert.Equal(t, "Updated On (IST): 15 Mar 2024, 04:00 PM │ ETA: 2024-03-15", entry.StatusLine)
	require.NotNil(t, entry.SlotLine)
	assert.Equal(t, "Scheduled Slot: 15 Mar from 10:00 to 14:00", *entry.SlotLine)
	require.NotNil(t, entry.LastScan)
	assert.Equal(t, "Delivered", entry.LastScan.Scan)
	assert.Equal(t, presenter.reports[0].Entry(), entry)
}

// TestTrackingService_Track_NoData verifies the notice is shown and nothing is journaled.
func TestTrackingService_Track_NoData(t *testing.T) {
	for _, payload := range []string{`{"data": []}`, `{}`, `{"data": null}`} {
		t.Run(payload, func(t *testing.T) {
			provider := &mockTrackingProvider{returnResponse: mustResponse(t, payload)}
			presenter := &mockPresenter{}
			journal := &mockJournal{}

			svc := NewTrackingService(provider, presenter, journal, ist)
			err := svc.Track(context.Background(), "000")

			require.NoError(t, err)
			assert.Equal(t, []string{"000"}, presenter.notFound)
			assert.Empty(t, presenter.reports)
			assert.Empty(t, journal.entries)
		})
	}
}

// TestTrackingService_Track_FetchError verifies provider errors skip presentation and journaling.
func TestTrackingService_Track_FetchError(t *testing.T) {
	providerErr := errors.New("delhivery API returned status: 500")
	provider := &mockTrackingProvider{returnError: providerErr}
	presenter := &mockPresenter{}
	journal := &mockJournal{}

	svc := NewTrackingService(provider, presenter, journal, ist)
	err := svc.Track(context.Background(), "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.ErrorIs(t, err, providerErr)
	assert.Empty(t, presenter.reports)
	assert.Empty(t, presenter.notFound)
	assert.Empty(t, journal.entries)
}

// TestTrackingService_Track_JournalError verifies write failures are surfaced after presenting.
func TestTrackingService_Track_JournalError(t *testing.T) {
	provider := &mockTrackingProvider{returnResponse: mustResponse(t, `{"data": [{"awb": "1"}]}`)}
	presenter := &mockPresenter{}
	journal := &mockJournal{returnError: errors.New("permission denied")}

	svc := NewTrackingService(provider, presenter, journal, ist)
	err := svc.Track(context.Background(), "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJournalFailed)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Len(t, presenter.reports, 1)
}

// TestTrackingService_Track_ClockFallback verifies the injected clock is used for a bad status time.
func TestTrackingService_Track_ClockFallback(t *testing.T) {
	provider := &mockTrackingProvider{returnResponse: mustResponse(t, `{
  "data": [{"awb": "1", "status": {"statusDateTime": "not-a-date"}}]
}`)}
	presenter := &mockPresenter{}
	journal := &mockJournal{}
	clockCalls := 0
	clock := func() time.Time {
		clockCalls++
		return time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	}

	svc := NewTrackingService(provider, presenter, journal, ist, WithClock(clock))
	err := svc.Track(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, 1, clockCalls)
	require.Len(t, presenter.reports, 1)
	assert.True(t, presenter.reports[0].StatusUsedFallback)
	assert.Equal(t, "01 Jun 2024, 11:30 PM", presenter.reports[0].UpdatedAt)
	require.Len(t, journal.entries, 1)
	assert.Equal(t, "01/06/24 11:30 PM", journal.entries[0].Timestamp)
	assert.Nil(t, journal.entries[0].LastScan)
	assert.Nil(t, journal.entries[0].SlotLine)
}
