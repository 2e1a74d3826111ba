package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tracefield-site/internal/domain"
	"tracefield-site/pkg/relay"
	"tracefield-site/pkg/security"
	"tracefield-site/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// SubjectPrefix starts the subject line of every relayed inquiry.
const SubjectPrefix = "Nouveau contact TraceField - "

// RelaySender is the outbound side of the pipeline.
type RelaySender interface {
	Send(ctx context.Context, payload domain.RelayPayload) (*relay.Response, error)
}

type contactUsecase struct {
	sender    RelaySender
	validate  *validator.Validate
	accessKey string
	log       *slog.Logger
	events    *security.SecurityLogger
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(sender RelaySender, validate *validator.Validate, accessKey string, log *slog.Logger) domain.ContactUsecase {
	if validate == nil {
		validate = validation.New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &contactUsecase{
		sender:    sender,
		validate:  validate,
		accessKey: accessKey,
		log:       log,
		events:    security.DefaultLogger(),
	}
}

// Validate trims the raw fields and checks them field by field
func (uc *contactUsecase) Validate(fields domain.ContactFields) (*domain.ContactInquiry, error) {
	fields = normalizeFields(fields)

	if err := uc.validate.Struct(fields); err != nil {
		if kinds, ok := validation.FieldKinds(err); ok {
			return nil, kinds
		}
		return nil, fmt.Errorf("failed to validate contact fields: %w", err)
	}

	modules := make([]domain.Module, len(fields.Modules))
	for i, m := range fields.Modules {
		modules[i] = domain.Module(m)
	}

	return &domain.ContactInquiry{
		Name:              fields.Name,
		Company:           fields.Company,
		Email:             fields.Email,
		Phone:             fields.Phone,
		Employees:         domain.EmployeeBracket(fields.Employees),
		Modules:           domain.NewModuleSet(modules...),
		Description:       fields.Description,
		ContactPreference: domain.ContactPreference(fields.ContactPreference),
	}, nil
}

func normalizeFields(f domain.ContactFields) domain.ContactFields {
	out := domain.ContactFields{
		Name:              strings.TrimSpace(f.Name),
		Company:           strings.TrimSpace(f.Company),
		Email:             strings.TrimSpace(f.Email),
		Phone:             strings.TrimSpace(f.Phone),
		Employees:         strings.TrimSpace(f.Employees),
		Description:       strings.TrimSpace(f.Description),
		ContactPreference: strings.TrimSpace(f.ContactPreference),
	}
	for _, m := range f.Modules {
		if m = strings.TrimSpace(m); m != "" {
			out.Modules = append(out.Modules, m)
		}
	}
	return out
}

// BuildPayload flattens an inquiry into the relay wire format
func BuildPayload(inquiry *domain.ContactInquiry, accessKey string) domain.RelayPayload {
	return domain.RelayPayload{
		AccessKey:         accessKey,
		Subject:           SubjectPrefix + inquiry.Company,
		FromName:          inquiry.Name,
		Name:              inquiry.Name,
		Company:           inquiry.Company,
		Email:             inquiry.Email,
		Phone:             inquiry.Phone,
		Employees:         string(inquiry.Employees),
		Modules:           inquiry.Modules.Joined(),
		Description:       inquiry.Description,
		ContactPreference: string(inquiry.ContactPreference),
	}
}

// Submit sends the inquiry to the relay once. Every failure collapses to
// StatusError for the caller; the cause is kept for the logs.
func (uc *contactUsecase) Submit(ctx context.Context, inquiry *domain.ContactInquiry) domain.SubmissionOutcome {
	if inquiry == nil {
		return domain.SubmissionOutcome{
			Status: domain.StatusError,
			Err:    errors.New("submit called without a validated inquiry"),
		}
	}

	payload := BuildPayload(inquiry, uc.accessKey)
	resp, err := uc.sender.Send(ctx, payload)
	if err == nil {
		uc.log.InfoContext(ctx, "Contact inquiry relayed",
			"status_code", resp.StatusCode,
			"modules", inquiry.Modules.Len(),
		)
		return domain.SubmissionOutcome{Status: domain.StatusSuccess, StatusCode: resp.StatusCode}
	}

	outcome := domain.SubmissionOutcome{Status: domain.StatusError, Err: err}
	var statusErr *relay.StatusError
	if errors.As(err, &statusErr) {
		outcome.Cause = domain.FailureStatus
		outcome.StatusCode = statusErr.StatusCode
		uc.log.ErrorContext(ctx, "Relay rejected contact inquiry",
			"status_code", statusErr.StatusCode,
			"body", statusErr.Body,
		)
	} else {
		outcome.Cause = domain.FailureNetwork
		uc.log.ErrorContext(ctx, "Relay call failed", "error", err)
	}

	uc.events.LogRelayFailure(ctx, string(outcome.Cause), outcome.StatusCode, inquiry.Email)
	return outcome
}
