package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xpc-health/rosterflow/models/roster"
)

// SplitName splits a raw "full name" cell into first and last name.
// One token keeps the last name empty; everything past the first token
// becomes the last name otherwise.
func SplitName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch {
	case len(parts) == 0:
		return "", ""
	case len(parts) == 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// Normalize turns one extracted FieldMap into a typed PatientRecord. A record
// without a usable name fails; a bad age only logs and defaults to 0.
func Normalize(fm roster.FieldMap, log zerolog.Logger) (roster.PatientRecord, error) {
	firstName, lastName := SplitName(fm["name"])
	if firstName == "" {
		return roster.PatientRecord{}, fmt.Errorf("record has no patient name")
	}

	age := 0
	if rawAge := strings.TrimSpace(fm["age"]); rawAge != "" {
		parsed, err := strconv.Atoi(rawAge)
		if err != nil || parsed < 0 {
			log.Warn().Str("age", rawAge).Str("name", fm["name"]).Msg("Invalid age value, defaulting to 0")
		} else {
			age = parsed
		}
	}

	return roster.PatientRecord{
		FirstName:       firstName,
		LastName:        lastName,
		Age:             age,
		Gender:          strings.TrimSpace(fm["gender"]),
		Sex:             strings.TrimSpace(fm["sex"]),
		AppointmentType: strings.TrimSpace(fm["type_of_appointment"]),
		AppointmentDate: CoerceDate(strings.TrimSpace(fm["appointment_date"])),
		AppointmentTime: CoerceTime(strings.TrimSpace(fm["appointment_time"])),
		Physician:       strings.TrimSpace(fm["physician"]),
		ReasonForVisit:  strings.TrimSpace(fm["reason_for_visit"]),
	}, nil
}
