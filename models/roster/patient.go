package roster

// RawTable is a roster as it comes off a CSV or spreadsheet reader: rows of
// cells, not necessarily of equal length. Missing cells read as empty strings.
type RawTable [][]string

// Cell returns the cell at (row, col), or "" when the table or row is too short.
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t) {
		return ""
	}
	if col < 0 || col >= len(t[row]) {
		return ""
	}
	return t[row][col]
}

// Orientation says where a roster keeps its field labels.
type Orientation int

const (
	// OrientationUnknown means the table was too small to classify.
	OrientationUnknown Orientation = iota
	// OrientationColumnBased: labels down column 0, one patient per column >= 2.
	OrientationColumnBased
	// OrientationRowBased: labels across row 0, one patient per subsequent row.
	OrientationRowBased
)

func (o Orientation) String() string {
	switch o {
	case OrientationColumnBased:
		return "column_based"
	case OrientationRowBased:
		return "row_based"
	default:
		return "unknown"
	}
}

// FieldMap holds one patient's raw values keyed by canonical field name
// (lower-cased, spaces replaced with underscores, e.g. "type_of_appointment").
type FieldMap map[string]string

// PatientRecord is the normalized unit of work produced by the ingestion
// pipeline and consumed by the XPC submission loop.
type PatientRecord struct {
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	Sex             string    `json:"sex"`
	AppointmentType string    `json:"appointment_type"`
	AppointmentDate DateValue `json:"appointment_date"`
	AppointmentTime TimeValue `json:"appointment_time"`
	Physician       string    `json:"physician"`
	ReasonForVisit  string    `json:"reason_for_visit"`
}

// FullName joins the split name back the way the lookup API expects it.
func (p PatientRecord) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
