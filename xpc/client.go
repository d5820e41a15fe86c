package xpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/xpc-health/rosterflow/models/fhir"
	"github.com/xpc-health/rosterflow/util"
)

// appointmentTypeCodes maps the display labels clinic staff type into rosters
// onto the SNOMED codes the XPC API accepts.
var appointmentTypeCodes = map[string]string{
	"Home Visit":   "439708006",
	"Telemedicine": "448337001",
	"Office Visit": "308335008",
	"Lab Visit":    "31108002",
	"Phone Call":   "185317003",
}

var (
	validSexCodes    = []string{"F", "M", "OTH", "UNK"}
	validGenderCodes = []string{"female", "male", "other", "unknown"}
)

const birthSexExtensionURL = "http://hl7.org/fhir/us/core/StructureDefinition/us-core-birthsex"

// Client talks to the XPC clinical-records FHIR API.
type Client struct {
	BaseURI    string
	HTTPClient *http.Client
	apiKey     string
	log        zerolog.Logger
}

// NewClient creates a Client for the given configuration. Transport-level
// retries are handled by retryablehttp; callers see at most one result per
// operation.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	return &Client{
		BaseURI:    cfg.BaseURL,
		HTTPClient: retryClient.StandardClient(),
		apiKey:     cfg.APIKey,
		log:        log,
	}
}

// CreatePatient registers a patient. Sex and gender must be FHIR codes
// (sex: F, M, OTH, UNK; gender: female, male, other, unknown); the API
// rejects the whole submission otherwise, so they are checked here first.
// The birth date is approximated as January 1 of the year matching the age.
func (c *Client) CreatePatient(firstName, lastName string, age int, sex, gender string) error {
	if !slices.Contains(validSexCodes, sex) {
		return fmt.Errorf("invalid sex code %q, valid codes are %v", sex, validSexCodes)
	}
	if !slices.Contains(validGenderCodes, gender) {
		return fmt.Errorf("invalid gender %q, valid values are %v", gender, validGenderCodes)
	}

	patient := fhir.Patient{
		ResourceType: "Patient",
		Extension: []fhir.Extension{
			{Url: birthSexExtensionURL, ValueCode: util.StringPtr(sex)},
		},
		Gender: util.StringPtr(gender),
		Active: util.BoolPtr(true),
		Name: []fhir.HumanName{
			{
				Use:    util.StringPtr("official"),
				Family: util.StringPtr(lastName),
				Given:  []string{firstName},
			},
		},
		BirthDate: util.StringPtr(ageToBirthDate(age, time.Now())),
	}

	return c.post("/Patient", patient, nil)
}

// FindPatientIDByName searches patients by name and returns the first match.
func (c *Client) FindPatientIDByName(name string) (string, error) {
	return c.searchIDByName("Patient", name)
}

// FindPractitionerIDByName searches practitioners by name and returns the
// first match.
func (c *Client) FindPractitionerIDByName(name string) (string, error) {
	return c.searchIDByName("Practitioner", name)
}

// BookAppointment creates a proposed appointment between a patient and a
// practitioner. The appointment type must be one of the recognized display
// labels; its SNOMED code travels on the wire.
func (c *Client) BookAppointment(patientID, practitionerID, reason string, start, end time.Time, appointmentType string) error {
	code, ok := appointmentTypeCodes[appointmentType]
	if !ok {
		return fmt.Errorf("invalid appointment type %q, valid types are %v", appointmentType, appointmentTypeDisplays())
	}

	appointment := fhir.Appointment{
		ResourceType: "Appointment",
		Status:       "proposed",
		ReasonCode: []fhir.CodeableConcept{
			{
				Coding: []fhir.Coding{
					{System: util.StringPtr("INTERNAL"), Display: util.StringPtr(reason)},
				},
				Text: util.StringPtr(reason),
			},
		},
		Participant: []fhir.AppointmentParticipant{
			{Actor: &fhir.Reference{Reference: util.StringPtr("Patient/" + patientID)}, Status: "accepted"},
			{Actor: &fhir.Reference{Reference: util.StringPtr("Practitioner/" + practitionerID)}, Status: "accepted"},
		},
		AppointmentType: &fhir.CodeableConcept{
			Coding: []fhir.Coding{
				{
					System:  util.StringPtr("http://snomed.info/sct"),
					Code:    util.StringPtr(code),
					Display: util.StringPtr(appointmentType),
				},
			},
		},
		Start: util.StringPtr(formatInstant(start)),
		End:   util.StringPtr(formatInstant(end)),
		SupportingInformation: []fhir.Reference{
			{Reference: util.StringPtr("Location/1")},
		},
	}

	return c.post("/Appointment", appointment, nil)
}

func (c *Client) searchIDByName(resourceType, name string) (string, error) {
	endpoint := fmt.Sprintf("/%s?name=%s", resourceType, url.QueryEscape(name))

	var bundle fhir.Bundle
	if err := c.get(endpoint, &bundle); err != nil {
		return "", fmt.Errorf("error searching %s: %w", resourceType, err)
	}
	if bundle.Total == nil || *bundle.Total == 0 || len(bundle.Entry) == 0 || bundle.Entry[0].Resource == nil {
		return "", fmt.Errorf("no %s found with name %q", resourceType, name)
	}
	return bundle.Entry[0].Resource.Id, nil
}

func ageToBirthDate(age int, now time.Time) string {
	// Always January 1; the roster only carries an age.
	return fmt.Sprintf("%04d-01-01", now.Year()-age)
}

func formatInstant(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func appointmentTypeDisplays() []string {
	displays := make([]string, 0, len(appointmentTypeCodes))
	for display := range appointmentTypeCodes {
		displays = append(displays, display)
	}
	slices.Sort(displays)
	return displays
}

// HTTP helper methods
func (c *Client) get(endpoint string, response any) error {
	return c.do(http.MethodGet, endpoint, nil, response)
}

func (c *Client) post(endpoint string, body, response any) error {
	return c.do(http.MethodPost, endpoint, body, response)
}

func (c *Client) do(method, endpoint string, body, response any) error {
	req, err := c.prepareRequest(method, endpoint, body)
	if err != nil {
		return err
	}
	c.signRequest(req)
	return c.sendRequest(req, response)
}

func (c *Client) prepareRequest(method, endpoint string, body any) (*http.Request, error) {
	uri := c.BaseURI + endpoint

	bodyReader := bytes.NewReader([]byte{})
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, uri, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) signRequest(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func (c *Client) sendRequest(req *http.Request, response any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("status", resp.Status).
		Msg("XPC API call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned error status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if response != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, response); err != nil {
			return fmt.Errorf("failed to parse response JSON: %w", err)
		}
	}

	return nil
}
