package handler

import (
	"delhivery-tracker/internal/core/console"
	"delhivery-tracker/internal/features/tracking/domain"
)

const (
	panelTitle     = "📦 Delhivery Shipment Info"
	historyTitle   = "Report"
	notFoundNotice = "No data found for the given AWB."
)

var historyHeaders = []string{"Location", "Scan", "Remark"}

// ConsoleHandler renders tracking results to the terminal.
type ConsoleHandler struct {
	console *console.Console
}

// NewConsoleHandler creates a new ConsoleHandler.
func NewConsoleHandler(c *console.Console) *ConsoleHandler {
	return &ConsoleHandler{
		console: c,
	}
}

// ShowReport prints the shipment panel and, when the shipment has tracking
// states, the scan history table.
func (h *ConsoleHandler) ShowReport(r domain.Report) {
	h.console.Println(h.console.Panel(panelTitle, h.panelLines(r)))

	if !r.HasHistory {
		return
	}

	rows := make([][]string, 0, len(r.Scans))
	for _, scan := range r.Scans {
		rows = append(rows, []string{scan.Location, scan.Scan, scan.Remark})
	}
	h.console.Println(h.console.Table(historyTitle, historyHeaders, rows))
}

// ShowNotFound prints the no-data notice.
func (h *ConsoleHandler) ShowNotFound(awb string) {
	h.console.Warn(notFoundNotice)
}

func (h *ConsoleHandler) panelLines(r domain.Report) []string {
	c := h.console
	lines := []string{
		c.Field("AWB", r.AWB),
		c.Field("Status", r.HQStatus+" ("+r.DetailedStatus+")"),
		c.Field("Package Type", r.PackageType),
		c.Field("Product Type", r.ProductType),
		c.Field("Reference No", r.ReferenceNo),
		c.Field("Updated On ("+r.ZoneLabel+")", r.UpdatedAt),
		c.Field("ETA", r.ETA),
	}
	if r.Slot != nil {
		lines = append(lines, c.Field("Slot", r.Slot.String()))
	}
	return lines
}
