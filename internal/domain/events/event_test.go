package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEventInputUnmarshalKeepsExtraFields(t *testing.T) {
	payload := `{
		"hr_email": "hr@x.com",
		"title": "Beach Cleanup",
		"date": "2026-09-12",
		"location": "Cox's Bazar",
		"volunteers_needed": 25
	}`

	var input EventInput
	require.NoError(t, json.Unmarshal([]byte(payload), &input))
	require.NoError(t, input.Validate())

	require.Equal(t, "hr@x.com", input.OwnerEmail)
	require.Equal(t, "Beach Cleanup", input.Title)
	require.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), input.Date)
	require.Equal(t, "Cox's Bazar", input.Attrs["location"])
	require.Equal(t, float64(25), input.Attrs["volunteers_needed"])
	require.NotContains(t, input.Attrs, "title")
}

func TestEventInputValidatePresence(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		field   string
	}{
		{"missing hr_email", `{"title":"T","date":"2026-01-01"}`, "hr_email"},
		{"missing title", `{"hr_email":"hr@x.com","date":"2026-01-01"}`, "title"},
		{"missing date", `{"hr_email":"hr@x.com","title":"T"}`, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var input EventInput
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &input))

			err := input.Validate()
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestEventInputRejectsBadDate(t *testing.T) {
	var input EventInput
	err := json.Unmarshal([]byte(`{"hr_email":"hr@x.com","title":"T","date":"12/09/2026"}`), &input)

	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "date", vErr.Field)
}

func TestEventInputAcceptsTimestampDate(t *testing.T) {
	var input EventInput
	require.NoError(t, json.Unmarshal([]byte(`{"hr_email":"hr@x.com","title":"T","date":"2026-09-12T18:30:00Z"}`), &input))
	require.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), input.Date)
}

func TestEventDocumentRoundTrip(t *testing.T) {
	event := Event{
		ID:         "01HQZX3Y4K6F7G8H9J0K1M2N3P",
		OwnerEmail: "hr@x.com",
		Title:      "Beach Cleanup",
		Date:       time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Attrs:      map[string]any{"location": "Cox's Bazar"},
		CreatedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	require.Equal(t, "01HQZX3Y4K6F7G8H9J0K1M2N3P", doc["id"])
	require.Equal(t, "hr@x.com", doc["hr_email"])
	require.Equal(t, "2026-09-12", doc["date"])
	require.Equal(t, "Cox's Bazar", doc["location"])
}

func TestEventPatchPartial(t *testing.T) {
	var patch EventPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Updated","location":"Dhaka"}`), &patch))

	require.Nil(t, patch.OwnerEmail)
	require.Nil(t, patch.Date)
	require.NotNil(t, patch.Title)
	require.Equal(t, "Updated", *patch.Title)
	require.Equal(t, "Dhaka", patch.Attrs["location"])
}
