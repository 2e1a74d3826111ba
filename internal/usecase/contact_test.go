package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracefield-site/internal/domain"
	"tracefield-site/internal/usecase"
	"tracefield-site/pkg/relay"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock relay
type MockRelaySender struct {
	mock.Mock
}

func (m *MockRelaySender) Send(ctx context.Context, payload domain.RelayPayload) (*relay.Response, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relay.Response), args.Error(1)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validFields() domain.ContactFields {
	return domain.ContactFields{
		Name:              "  Jean Dupont ",
		Company:           "Dupont Plomberie",
		Email:             "jean@dupont.fr",
		Phone:             "07 69 80 63 34",
		Employees:         "6-10",
		Modules:           []string{"Rapports d'intervention", "Gestion de stock"},
		Description:       "Nous voulons arrêter le papier.",
		ContactPreference: "Téléphone",
	}
}

func TestContactValidate(t *testing.T) {
	uc := usecase.NewContactUsecase(new(MockRelaySender), nil, "key", quietLogger())

	t.Run("Should accept a complete inquiry and trim it", func(t *testing.T) {
		inquiry, err := uc.Validate(validFields())
		require.NoError(t, err)
		assert.Equal(t, "Jean Dupont", inquiry.Name)
		assert.Equal(t, domain.Employees6To10, inquiry.Employees)
		assert.Equal(t, domain.PreferencePhone, inquiry.ContactPreference)
		assert.Equal(t, 2, inquiry.Modules.Len())
	})

	t.Run("Should reject an empty name as RequiredFieldMissing", func(t *testing.T) {
		fields := validFields()
		fields.Name = "   "
		_, err := uc.Validate(fields)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, domain.ValidationErrors{"name": domain.RequiredFieldMissing}, verrs)
	})

	t.Run("Should reject a malformed email as InvalidFormat", func(t *testing.T) {
		fields := validFields()
		fields.Email = "not-an-email"
		_, err := uc.Validate(fields)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, domain.InvalidFormat, verrs["email"])
	})

	t.Run("Should accept the shortest valid email", func(t *testing.T) {
		fields := validFields()
		fields.Email = "a@b.co"
		_, err := uc.Validate(fields)
		assert.NoError(t, err)
	})

	t.Run("Should reject an empty email as RequiredFieldMissing", func(t *testing.T) {
		fields := validFields()
		fields.Email = ""
		_, err := uc.Validate(fields)

		var verrs domain.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, domain.RequiredFieldMissing, verrs["email"])
	})

	t.Run("Should accept missing optional fields", func(t *testing.T) {
		fields := validFields()
		fields.Employees = ""
		fields.Modules = nil
		fields.Description = ""
		fields.ContactPreference = ""
		inquiry, err := uc.Validate(fields)
		require.NoError(t, err)
		assert.Equal(t, 0, inquiry.Modules.Len())
	})

	t.Run("Should collapse duplicate modules", func(t *testing.T) {
		fields := validFields()
		fields.Modules = []string{"Intranet", "Intranet", " Intranet "}
		inquiry, err := uc.Validate(fields)
		require.NoError(t, err)
		assert.Equal(t, []domain.Module{domain.ModuleIntranet}, inquiry.Modules.Modules())
	})
}

func TestBuildPayload(t *testing.T) {
	t.Run("Should join modules and interpolate the company", func(t *testing.T) {
		inquiry := &domain.ContactInquiry{
			Name:              "Jean",
			Company:           "Dupont",
			Email:             "a@b.co",
			Phone:             "0600",
			Employees:         domain.Employees1To5,
			Modules:           domain.NewModuleSet(domain.ModuleReports, domain.ModuleStock),
			Description:       "desc",
			ContactPreference: domain.PreferenceVideo,
		}

		want := domain.RelayPayload{
			AccessKey:         "key",
			Subject:           "Nouveau contact TraceField - Dupont",
			FromName:          "Jean",
			Name:              "Jean",
			Company:           "Dupont",
			Email:             "a@b.co",
			Phone:             "0600",
			Employees:         "1-5",
			Modules:           "Rapports d'intervention, Gestion de stock",
			Description:       "desc",
			ContactPreference: "Visio",
		}
		if diff := cmp.Diff(want, usecase.BuildPayload(inquiry, "key")); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should use the sentinel when no module is selected", func(t *testing.T) {
		payload := usecase.BuildPayload(&domain.ContactInquiry{Company: "X"}, "key")
		assert.Equal(t, domain.NoModulesSelected, payload.Modules)
	})
}

func TestContactSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report success on 2xx", func(t *testing.T) {
		sender := new(MockRelaySender)
		sender.On("Send", ctx, mock.AnythingOfType("domain.RelayPayload")).
			Return(&relay.Response{StatusCode: http.StatusOK, Success: true}, nil).Once()

		uc := usecase.NewContactUsecase(sender, nil, "key", quietLogger())
		inquiry, err := uc.Validate(validFields())
		require.NoError(t, err)

		outcome := uc.Submit(ctx, inquiry)
		assert.True(t, outcome.Succeeded())
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should collapse a relay rejection to error", func(t *testing.T) {
		sender := new(MockRelaySender)
		sender.On("Send", ctx, mock.Anything).
			Return(nil, &relay.StatusError{StatusCode: http.StatusInternalServerError}).Once()

		uc := usecase.NewContactUsecase(sender, nil, "key", quietLogger())
		inquiry, _ := uc.Validate(validFields())

		outcome := uc.Submit(ctx, inquiry)
		assert.Equal(t, domain.StatusError, outcome.Status)
		assert.Equal(t, domain.FailureStatus, outcome.Cause)
		assert.Equal(t, http.StatusInternalServerError, outcome.StatusCode)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should collapse a network failure to error", func(t *testing.T) {
		sender := new(MockRelaySender)
		sender.On("Send", ctx, mock.Anything).
			Return(nil, &relay.NetworkError{Err: errors.New("connection refused")}).Once()

		uc := usecase.NewContactUsecase(sender, nil, "key", quietLogger())
		inquiry, _ := uc.Validate(validFields())

		outcome := uc.Submit(ctx, inquiry)
		assert.Equal(t, domain.StatusError, outcome.Status)
		assert.Equal(t, domain.FailureNetwork, outcome.Cause)
	})

	t.Run("Should refuse a nil inquiry without calling the relay", func(t *testing.T) {
		sender := new(MockRelaySender)
		uc := usecase.NewContactUsecase(sender, nil, "key", quietLogger())

		outcome := uc.Submit(ctx, nil)
		assert.Equal(t, domain.StatusError, outcome.Status)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

// The scenarios below go through the real relay client against a local server.
func TestSubmissionScenarios(t *testing.T) {
	ctx := context.Background()

	run := func(t *testing.T, endpoint string, resetAfter time.Duration) (*usecase.SubmissionTracker, domain.SubmissionOutcome) {
		t.Helper()
		client := relay.NewClient(relay.Config{Endpoint: endpoint, AccessKey: "key"}, nil)
		uc := usecase.NewContactUsecase(client, nil, client.AccessKey(), quietLogger())
		tracker := usecase.NewSubmissionTracker(resetAfter)
		t.Cleanup(tracker.Close)

		inquiry, err := uc.Validate(validFields())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusIdle, tracker.Status())

		outcome, err := usecase.RunSubmission(ctx, uc, tracker, inquiry)
		require.NoError(t, err)
		return tracker, outcome
	}

	t.Run("Relay answers 200 then the banner clears", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		tracker, outcome := run(t, srv.URL, 50*time.Millisecond)
		assert.True(t, outcome.Succeeded())
		assert.Equal(t, domain.StatusSuccess, tracker.Status())
		assert.Eventually(t, func() bool {
			return tracker.Status() == domain.StatusIdle
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("Relay answers 500 and the error stays", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		tracker, outcome := run(t, srv.URL, 10*time.Millisecond)
		assert.Equal(t, domain.StatusError, outcome.Status)
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, domain.StatusError, tracker.Status())
	})

	t.Run("Connection refused still settles on error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		endpoint := srv.URL
		srv.Close()

		tracker, outcome := run(t, endpoint, time.Second)
		assert.Equal(t, domain.StatusError, outcome.Status)
		assert.Equal(t, domain.FailureNetwork, outcome.Cause)
		assert.Equal(t, domain.StatusError, tracker.Status())
	})
}
