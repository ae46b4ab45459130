package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DisplayLayout is used on screen, e.g. "15 Mar 2024, 04:00 PM".
	DisplayLayout = "02 Jan 2006, 03:04 PM"
	// LogLayout is used in the tracking journal, e.g. "15/03/24 04:00 PM".
	LogLayout = "02/01/06 03:04 PM"
)

// statusTimeLayouts are the ISO-8601 shapes accepted for statusDateTime.
// Layouts without a zone parse as UTC.
var statusTimeLayouts = isoLayouts()

// isoLayouts expands the extended and basic ISO-8601 forms: a date alone, or a
// date joined by "T" or a space to an hour, minute or second time with an
// optional fraction and an optional Z, ±hh:mm, ±hhmm or ±hh zone.
func isoLayouts() []string {
	forms := []struct {
		date   string
		clocks []string
	}{
		{date: "2006-01-02", clocks: []string{"15:04:05.999999999", "15:04", "15"}},
		{date: "20060102", clocks: []string{"150405.999999999", "1504", "15"}},
	}
	zones := []string{"Z07:00", "Z0700", "Z07", ""}

	var layouts []string
	for _, f := range forms {
		for _, sep := range []string{"T", " "} {
			for _, clock := range f.clocks {
				for _, zone := range zones {
					layouts = append(layouts, f.date+sep+clock+zone)
				}
			}
		}
		layouts = append(layouts, f.date)
	}
	return layouts
}

// ScanRecord is a scan with placeholders applied, as shown in the report table.
type ScanRecord struct {
	Location string
	Scan     string
	Remark   string
}

// SlotWindow is a complete scheduled delivery window.
type SlotWindow struct {
	Date string
	From string
	To   string
}

// String renders the window as "<date> from <from> to <to>".
func (w SlotWindow) String() string {
	return fmt.Sprintf("%s from %s to %s", w.Date, w.From, w.To)
}

// Report is everything shown and logged for one shipment.
type Report struct {
	AWB            string
	HQStatus       string
	DetailedStatus string
	PackageType    string
	ProductType    string
	ReferenceNo    string
	ETA            string

	// ZoneLabel names the display zone, e.g. "IST".
	ZoneLabel string
	// UpdatedAt is the status time in DisplayLayout.
	UpdatedAt string
	// LogTime is the status time in LogLayout.
	LogTime string
	// StatusUsedFallback is true when statusDateTime was missing or unparsable.
	StatusUsedFallback bool

	StatusLine string
	// Slot and SlotLine are nil unless the slot has date, from and to.
	Slot     *SlotWindow
	SlotLine *string

	// HasHistory is true when the payload carried at least one tracking state.
	HasHistory bool
	Scans      []ScanRecord
	// LastScan is the final scan in payload order, nil when there are none.
	LastScan *ScanRecord
}

// JournalEntry is the payload appended to the tracking log.
type JournalEntry struct {
	Timestamp  string
	AWB        string
	StatusLine string
	SlotLine   *string
	LastScan   *ScanRecord
}

// Entry returns the journal record for the report.
func (r Report) Entry() JournalEntry {
	return JournalEntry{
		Timestamp:  r.LogTime,
		AWB:        r.AWB,
		StatusLine: r.StatusLine,
		SlotLine:   r.SlotLine,
		LastScan:   r.LastScan,
	}
}

// BuildReport maps a shipment into its report. now is used when the
// status time is missing or unparsable; zone is the display zone.
func BuildReport(s Shipment, now time.Time, zone *time.Location) Report {
	statusTime, ok := ParseStatusTime(s.Status.StatusDateTime.String())
	if !ok {
		statusTime = now.UTC()
	}
	local := statusTime.In(zone)
	label := zone.String()
	if strings.TrimSpace(label) == "" {
		label = local.Format("-07:00")
	}
	eta := s.DeliveryDate.Or(Placeholder)

	r := Report{
		AWB:                s.AWB.Or(Placeholder),
		HQStatus:           s.HQStatus.Or(Placeholder),
		DetailedStatus:     s.Status.Status.Or(Placeholder),
		PackageType:        s.PackageType.Or(Placeholder),
		ProductType:        s.ProductType.Or(Placeholder),
		ReferenceNo:        s.ReferenceNo.Or(Placeholder),
		ETA:                eta,
		ZoneLabel:          label,
		UpdatedAt:          local.Format(DisplayLayout),
		LogTime:            local.Format(LogLayout),
		StatusUsedFallback: !ok,
		HasHistory:         len(s.TrackingStates) > 0,
	}
	r.StatusLine = fmt.Sprintf("Updated On (%s): %s │ ETA: %s", label, r.UpdatedAt, eta)

	if s.Slot.Complete() {
		w := SlotWindow{Date: s.Slot.Date.String(), From: s.Slot.From.String(), To: s.Slot.To.String()}
		line := "Scheduled Slot: " + w.String()
		r.Slot = &w
		r.SlotLine = &line
	}

	r.Scans = FoldScans(s.TrackingStates, []ScanRecord(nil), func(rows []ScanRecord, scan ScanRecord) []ScanRecord {
		return append(rows, scan)
	})
	r.LastScan = FoldScans(s.TrackingStates, (*ScanRecord)(nil), func(_ *ScanRecord, scan ScanRecord) *ScanRecord {
		return &scan
	})

	return r
}

// FoldScans reduces every scan of every state into one value, visiting
// states in order and the scans of each state in order.
func FoldScans[T any](states []TrackingState, initial T, fn func(acc T, scan ScanRecord) T) T {
	acc := initial
	for _, state := range states {
		for _, ev := range state.Scans {
			acc = fn(acc, ev.Record())
		}
	}
	return acc
}

// Record applies placeholders to the scan.
func (e ScanEvent) Record() ScanRecord {
	return ScanRecord{
		Location: e.CityLocation.Or(Placeholder),
		Scan:     e.Scan.Or(Placeholder),
		Remark:   e.ScanNslRemark.Or(Placeholder),
	}
}

// ParseStatusTime parses an ISO-8601 timestamp. The second result is false
// when raw matches none of the accepted layouts.
func ParseStatusTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range statusTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
