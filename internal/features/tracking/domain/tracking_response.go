package domain

import (
	"bytes"
	"encoding/json"
)

// Placeholder is substituted for every missing optional field.
const Placeholder = "N/A"

// TrackingResponse is the unified-tracking payload returned by Delhivery.
type TrackingResponse struct {
	// Data holds zero or one shipment; only the first one is used.
	Data []Shipment `json:"data"`
}

// FirstShipment returns the shipment to report on, if the payload has one.
func (r *TrackingResponse) FirstShipment() (*Shipment, bool) {
	if r == nil || len(r.Data) == 0 {
		return nil, false
	}
	return &r.Data[0], true
}

// Shipment is a single AWB as described by the tracking API.
type Shipment struct {
	AWB            Text            `json:"awb"`
	HQStatus       Text            `json:"hqStatus"`
	Status         ShipmentStatus  `json:"status"`
	DeliveryDate   Text            `json:"deliveryDate"`
	PackageType    Text            `json:"packageType"`
	ProductType    Text            `json:"productType"`
	ReferenceNo    Text            `json:"referenceNo"`
	Slot           *Slot           `json:"slot"`
	TrackingStates []TrackingState `json:"trackingStates"`
}

// ShipmentStatus is the detailed status block of a shipment.
type ShipmentStatus struct {
	Status         Text `json:"status"`
	StatusDateTime Text `json:"statusDateTime"`
}

// Slot is the scheduled delivery window.
type Slot struct {
	Date Text `json:"date"`
	From Text `json:"from"`
	To   Text `json:"to"`
}

// UnmarshalJSON implements json.Unmarshaler. A slot that is not an object,
// such as "" or [], decodes as an empty slot.
func (s *Slot) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || raw[0] != '{' {
		*s = Slot{}
		return nil
	}

	type plain Slot
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*s = Slot(p)
	return nil
}

// Complete reports whether date, from and to are all present.
// A partial slot is treated as no slot at all.
func (s *Slot) Complete() bool {
	return s != nil && s.Date.Present() && s.From.Present() && s.To.Present()
}

// TrackingState groups the scans recorded for one leg of the journey.
type TrackingState struct {
	Scans []ScanEvent `json:"scans"`
}

// ScanEvent is a single scan as reported by the courier.
type ScanEvent struct {
	CityLocation  Text `json:"cityLocation"`
	Scan          Text `json:"scan"`
	ScanNslRemark Text `json:"scanNslRemark"`
}

// Text is a loosely typed JSON scalar kept in its string form.
// Strings decode as-is, numbers and booleans keep their literal text,
// and null or a missing key leaves the value absent.
type Text struct {
	value   string
	present bool
}

// NewText returns a present Text holding s.
func NewText(s string) Text {
	return Text{value: s, present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*t = Text{}
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = NewText(s)
		return nil
	}

	*t = NewText(string(raw))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

// Present reports whether the key was set to a non-null value.
func (t Text) Present() bool {
	return t.present
}

// String returns the value, or an empty string when absent.
func (t Text) String() string {
	return t.value
}

// Or returns the value, or fallback when absent.
func (t Text) Or(fallback string) string {
	if !t.present {
		return fallback
	}
	return t.value
}
