package xpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpc-health/rosterflow/models/roster"
)

func testRecord(first, last, physician string) roster.PatientRecord {
	return roster.PatientRecord{
		FirstName:       first,
		LastName:        last,
		Age:             34,
		Gender:          "male",
		Sex:             "M",
		AppointmentType: "Phone Call",
		AppointmentDate: roster.NewDate(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)),
		AppointmentTime: roster.NewTime(time.Date(0, 1, 1, 11, 0, 0, 0, time.UTC)),
		Physician:       physician,
		ReasonForVisit:  "Cold",
	}
}

func TestSubmit(t *testing.T) {
	bookings := 0
	var bookedAppointment map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/Patient":
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodGet && r.URL.Path == "/Patient":
			json.NewEncoder(w).Encode(searchBundle("pat-1"))
		case r.Method == http.MethodGet && r.URL.Path == "/Practitioner":
			if r.URL.Query().Get("name") == "Wits" {
				json.NewEncoder(w).Encode(searchBundle("prac-9"))
			} else {
				json.NewEncoder(w).Encode(searchBundle())
			}
		case r.Method == http.MethodPost && r.URL.Path == "/Appointment":
			bookings++
			json.NewDecoder(r.Body).Decode(&bookedAppointment)
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.Nop())
	submitter := NewSubmitter(client, zerolog.Nop())

	unscheduled := testRecord("Mary", "Smith", "Wits")
	unscheduled.AppointmentDate = roster.RawDate("sometime next week")

	records := []roster.PatientRecord{
		testRecord("John", "Doe", "Wits"),
		testRecord("Ben", "Smith", "Nobody Here"),
		unscheduled,
	}

	results := submitter.Submit(records)
	require.Len(t, results, 3)

	// Fully resolvable record books an appointment.
	assert.True(t, results[0].PatientCreated)
	assert.Equal(t, "pat-1", results[0].PatientID)
	assert.Equal(t, "prac-9", results[0].PractitionerID)
	assert.True(t, results[0].Booked)
	assert.Empty(t, results[0].Errors)

	// Missing practitioner fails that record's appointment step only.
	assert.True(t, results[1].PatientCreated)
	assert.Equal(t, "pat-1", results[1].PatientID)
	assert.False(t, results[1].Booked)
	require.Len(t, results[1].Errors, 1)
	assert.Contains(t, results[1].Errors[0], "error finding practitioner")

	// Unresolvable appointment start skips booking, keeps the rest.
	assert.True(t, results[2].PatientCreated)
	assert.False(t, results[2].Booked)
	require.Len(t, results[2].Errors, 1)
	assert.Contains(t, results[2].Errors[0], "cannot determine appointment start")

	require.Equal(t, 1, bookings)
	assert.Equal(t, "2025-03-21T11:00:00.000Z", bookedAppointment["start"])
	assert.Equal(t, "2025-03-21T12:00:00.000Z", bookedAppointment["end"])
}

func TestSubmit_InvalidSexRecordedPerRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/Patient":
			json.NewEncoder(w).Encode(searchBundle("pat-1"))
		case r.Method == http.MethodGet && r.URL.Path == "/Practitioner":
			json.NewEncoder(w).Encode(searchBundle("prac-9"))
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.Nop())
	submitter := NewSubmitter(client, zerolog.Nop())

	record := testRecord("John", "Doe", "Wits")
	record.Sex = "Male" // roster text, not a FHIR code

	results := submitter.Submit([]roster.PatientRecord{record})
	require.Len(t, results, 1)
	assert.False(t, results[0].PatientCreated)
	require.NotEmpty(t, results[0].Errors)
	assert.Contains(t, results[0].Errors[0], "invalid sex code")
	// Creation failed but the appointment path still ran.
	assert.True(t, results[0].Booked)
}

func TestAppointmentStart(t *testing.T) {
	record := testRecord("John", "Doe", "Wits")
	start, err := appointmentStart(record)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 21, 11, 0, 0, 0, time.UTC), start)

	// Raw-but-ISO values still combine, the way legacy flat rosters arrive.
	record.AppointmentDate = roster.RawDate("2025-03-10")
	record.AppointmentTime = roster.RawTime("13:30:00")
	start, err = appointmentStart(record)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC), start)
}
