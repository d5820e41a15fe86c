package fhir

// Minimal FHIR R4 resource shapes, limited to what the XPC API exchange
// needs: patient creation, patient/practitioner name search, appointment
// booking.

// HumanName represents a FHIR HumanName
type HumanName struct {
	Use    *string  `json:"use,omitempty"`
	Family *string  `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
	Text   *string  `json:"text,omitempty"`
}

// Extension represents a FHIR Extension
type Extension struct {
	Url       string  `json:"url"`
	ValueCode *string `json:"valueCode,omitempty"`
}

// Coding represents a FHIR Coding
type Coding struct {
	System  *string `json:"system,omitempty"`
	Code    *string `json:"code,omitempty"`
	Display *string `json:"display,omitempty"`
}

// CodeableConcept represents a FHIR CodeableConcept
type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   *string  `json:"text,omitempty"`
}

// Reference represents a FHIR Reference
type Reference struct {
	Reference *string `json:"reference,omitempty"`
}

// Patient represents a FHIR Patient
type Patient struct {
	ResourceType string      `json:"resourceType"`
	Id           *string     `json:"id,omitempty"`
	Extension    []Extension `json:"extension,omitempty"`
	Gender       *string     `json:"gender,omitempty"`
	Active       *bool       `json:"active,omitempty"`
	Name         []HumanName `json:"name,omitempty"`
	BirthDate    *string     `json:"birthDate,omitempty"`
}

// Practitioner represents a FHIR Practitioner
type Practitioner struct {
	ResourceType string      `json:"resourceType"`
	Id           *string     `json:"id,omitempty"`
	Name         []HumanName `json:"name,omitempty"`
}

// AppointmentParticipant represents a FHIR Appointment.participant
type AppointmentParticipant struct {
	Actor  *Reference `json:"actor,omitempty"`
	Status string     `json:"status"`
}

// Appointment represents a FHIR Appointment
type Appointment struct {
	ResourceType          string                   `json:"resourceType"`
	Id                    *string                  `json:"id,omitempty"`
	Status                string                   `json:"status"`
	ReasonCode            []CodeableConcept        `json:"reasonCode,omitempty"`
	Participant           []AppointmentParticipant `json:"participant,omitempty"`
	AppointmentType       *CodeableConcept         `json:"appointmentType,omitempty"`
	Start                 *string                  `json:"start,omitempty"`
	End                   *string                  `json:"end,omitempty"`
	SupportingInformation []Reference              `json:"supportingInformation,omitempty"`
}

// BundleEntry represents a FHIR Bundle.entry
type BundleEntry struct {
	Resource *EntryResource `json:"resource,omitempty"`
}

// EntryResource carries the fields this client reads out of searchset entries.
type EntryResource struct {
	ResourceType string      `json:"resourceType"`
	Id           string      `json:"id"`
	Name         []HumanName `json:"name,omitempty"`
}

// Bundle represents a FHIR Bundle as returned by a name search
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type,omitempty"`
	Total        *int          `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}
