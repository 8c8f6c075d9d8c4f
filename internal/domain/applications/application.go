package applications

import (
	"encoding/json"
	"time"
)

var reservedKeys = map[string]struct{}{
	"id":              {},
	"_id":             {},
	"job_id":          {},
	"applicant_email": {},
	"applied_at":      {},
}

// Application records one applicant's claim on one event. At most one
// application may exist per (job_id, applicant_email) pair; the storage
// layer enforces that with a unique index.
type Application struct {
	ID             string
	JobID          string
	ApplicantEmail string
	AppliedAt      time.Time
	Attrs          map[string]any
}

// Document renders the application as the flat JSON object the API serves.
func (a Application) Document() map[string]any {
	doc := make(map[string]any, len(a.Attrs)+4)
	for key, value := range a.Attrs {
		doc[key] = value
	}
	doc["id"] = a.ID
	doc["job_id"] = a.JobID
	doc["applicant_email"] = a.ApplicantEmail
	doc["applied_at"] = a.AppliedAt.UTC().Format(time.RFC3339)
	return doc
}

func (a Application) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Document())
}

// ApplicationInput is the payload accepted when applying to an event.
// Unknown fields persist opaquely in Attrs.
type ApplicationInput struct {
	JobID          string
	ApplicantEmail string
	Attrs          map[string]any
}

func (in *ApplicationInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if message, ok := raw["job_id"]; ok {
		if err := json.Unmarshal(message, &in.JobID); err != nil {
			return ValidationError{Field: "job_id", Message: "must be a string"}
		}
	}
	if message, ok := raw["applicant_email"]; ok {
		if err := json.Unmarshal(message, &in.ApplicantEmail); err != nil {
			return ValidationError{Field: "applicant_email", Message: "must be a string"}
		}
	}

	attrs := make(map[string]any)
	for key, message := range raw {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		var value any
		if err := json.Unmarshal(message, &value); err != nil {
			continue
		}
		attrs[key] = value
	}
	if len(attrs) > 0 {
		in.Attrs = attrs
	}
	return nil
}

func (in ApplicationInput) Validate() error {
	if in.JobID == "" {
		return ValidationError{Field: "job_id", Message: "required"}
	}
	if in.ApplicantEmail == "" {
		return ValidationError{Field: "applicant_email", Message: "required"}
	}
	return nil
}
