package xpc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/xpc-health/rosterflow/models/roster"
)

// RecordResult reports what happened to one roster record during submission.
type RecordResult struct {
	Patient        roster.PatientRecord `json:"patient"`
	PatientID      string               `json:"patient_id,omitempty"`
	PractitionerID string               `json:"practitioner_id,omitempty"`
	PatientCreated bool                 `json:"patient_created"`
	Booked         bool                 `json:"appointment_booked"`
	Errors         []string             `json:"errors,omitempty"`
}

// Submitter pushes normalized roster records to the XPC API, one at a time,
// in roster order. A failure on one record never aborts the rest of the
// batch; it lands in that record's result instead.
type Submitter struct {
	client *Client
	log    zerolog.Logger
}

// NewSubmitter creates a Submitter on top of an XPC client.
func NewSubmitter(client *Client, log zerolog.Logger) *Submitter {
	return &Submitter{client: client, log: log}
}

// Submit creates each patient, resolves patient and practitioner IDs by name,
// and books the appointment with end = start + 1 hour.
func (s *Submitter) Submit(records []roster.PatientRecord) []RecordResult {
	runID := uuid.NewString()
	log := s.log.With().Str("run_id", runID).Logger()
	log.Info().Int("records", len(records)).Msg("Starting roster submission")

	results := make([]RecordResult, 0, len(records))
	for i, record := range records {
		result := s.submitRecord(record, log.With().Int("record", i).Logger())
		results = append(results, result)
	}

	log.Info().Int("records", len(records)).Msg("Finished roster submission")
	return results
}

func (s *Submitter) submitRecord(record roster.PatientRecord, log zerolog.Logger) RecordResult {
	result := RecordResult{Patient: record}
	fail := func(err error) {
		log.Warn().Err(err).Str("patient", record.FullName()).Msg("Submission step failed")
		result.Errors = append(result.Errors, err.Error())
	}

	if err := s.client.CreatePatient(record.FirstName, record.LastName, record.Age, record.Sex, record.Gender); err != nil {
		fail(fmt.Errorf("error creating patient: %w", err))
	} else {
		result.PatientCreated = true
	}

	if id, err := s.client.FindPatientIDByName(record.FullName()); err != nil {
		fail(fmt.Errorf("error finding patient: %w", err))
	} else {
		result.PatientID = id
		log.Debug().Str("patient_id", id).Msg("Resolved patient ID")
	}

	if id, err := s.client.FindPractitionerIDByName(record.Physician); err != nil {
		fail(fmt.Errorf("error finding practitioner: %w", err))
	} else {
		result.PractitionerID = id
		log.Debug().Str("practitioner_id", id).Msg("Resolved practitioner ID")
	}

	start, err := appointmentStart(record)
	if err != nil {
		fail(err)
	}

	if result.PatientID == "" || result.PractitionerID == "" || err != nil {
		return result
	}

	end := start.Add(time.Hour)
	if err := s.client.BookAppointment(result.PatientID, result.PractitionerID, record.ReasonForVisit, start, end, record.AppointmentType); err != nil {
		fail(fmt.Errorf("error creating appointment: %w", err))
		return result
	}
	result.Booked = true
	return result
}

// appointmentStart combines the record's date and time into one timestamp.
// Both fields stringify to ISO forms when parsed and to the original roster
// text otherwise, so an unparsed-but-ISO pair still books correctly.
func appointmentStart(record roster.PatientRecord) (time.Time, error) {
	combined := fmt.Sprintf("%sT%s", record.AppointmentDate, record.AppointmentTime)
	start, err := time.Parse("2006-01-02T15:04:05", combined)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot determine appointment start from %q", combined)
	}
	return start, nil
}
