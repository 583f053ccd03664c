package model

// RowStatus records what happened to a row during processing.
type RowStatus string

const (
	RowStatusPending RowStatus = "pending"
	RowStatusSkipped RowStatus = "skipped" // no map location
	RowStatusFailed  RowStatus = "failed"  // short URL did not resolve
	RowStatusMissed  RowStatus = "missed"  // resolved, no coordinates in URL
	RowStatusLocated RowStatus = "located" // coordinates extracted
)

// Record is one property row of the input table.
type Record struct {
	Line        int       `json:"line"` // 1-based data row number, header excluded
	PropertyID  string    `json:"property_id"`
	MapURL      string    `json:"map_url,omitempty"` // empty when the cell is null
	Latitude    string    `json:"latitude,omitempty"`
	Longitude   string    `json:"longitude,omitempty"`
	ResolvedURL string    `json:"resolved_url,omitempty"`
	Status      RowStatus `json:"status"`

	// Cells holds the raw row so untouched columns survive the round trip.
	Cells []string `json:"-"`
}

// HasMapURL reports whether the row carries a map location to resolve.
func (r *Record) HasMapURL() bool {
	return r.MapURL != ""
}

// SetCoordinates stores a latitude/longitude pair. Both values are set
// together or the pair is cleared.
func (r *Record) SetCoordinates(lat, lng string) {
	if lat == "" || lng == "" {
		r.Latitude, r.Longitude = "", ""
		return
	}
	r.Latitude, r.Longitude = lat, lng
}

// HasCoordinates reports whether both coordinates are populated.
func (r *Record) HasCoordinates() bool {
	return r.Latitude != "" && r.Longitude != ""
}

// Table is a loaded property table.
type Table struct {
	Header  []string
	Records []Record

	PropertyIDCol int
	MapURLCol     int
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Records)
}
