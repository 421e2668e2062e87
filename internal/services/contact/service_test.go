package contact

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirehaus/arcade/internal/model"
	"github.com/tirehaus/arcade/internal/testutil"
)

func validForm() Form {
	return Form{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "050-123-4567",
		Consent:  true,
		Source:   "hero",
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	assert.Nil(t, Validate(validForm()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Form)
		badField string
	}{
		{"missing name", func(f *Form) { f.FullName = "  " }, "fullName"},
		{"missing email", func(f *Form) { f.Email = "" }, "email"},
		{"invalid email", func(f *Form) { f.Email = "not-an-email" }, "email"},
		{"missing phone", func(f *Form) { f.Phone = "" }, "phone"},
		{"phone too short", func(f *Form) { f.Phone = "12345" }, "phone"},
		{"phone too long", func(f *Form) { f.Phone = "05012345678" }, "phone"},
		{"no consent", func(f *Form) { f.Consent = false }, "consent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			verr := Validate(form)
			require.NotNil(t, verr)
			assert.Contains(t, verr.Fields, tt.badField)
		})
	}
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	verr := Validate(Form{})
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 4)
}

func TestPhoneAcceptsFormattingCharacters(t *testing.T) {
	form := validForm()
	form.Phone = "(050) 123-4567"
	assert.Nil(t, Validate(form))
}

func TestSubmitWithoutEndpointAccepts(t *testing.T) {
	svc := New(Config{}, testutil.NopLogger())
	assert.NoError(t, svc.Submit(context.Background(), validForm()))
}

func TestSubmitForwardsToEndpoint(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := New(Config{EndpointURL: server.URL}, testutil.NopLogger())
	require.NoError(t, svc.Submit(context.Background(), validForm()))

	assert.Equal(t, "Jane Doe", received["fullName"])
	assert.Equal(t, "Yes", received["consentGiven"])
	assert.Equal(t, "hero", received["source"])
}

func TestSubmitEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := New(Config{EndpointURL: server.URL}, testutil.NopLogger())
	err := svc.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, model.ErrBackendUnavailable)
}

func TestSubmitInvalidFormNeverReachesEndpoint(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := New(Config{EndpointURL: server.URL}, testutil.NopLogger())
	err := svc.Submit(context.Background(), Form{})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.False(t, called)
}
