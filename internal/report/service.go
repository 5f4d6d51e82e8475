package report

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/fiscalite/taxsim/internal/output"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Email delivery states reported in a Result.
const (
	EmailSkipped = "skipped"
	EmailSent    = "sent"
	EmailFailed  = "failed"
)

// Request asks for a report on one simulation, optionally mailed to Email.
type Request struct {
	Simulation domain.SimulationRequest `json:"simulation" yaml:"simulation"`
	Email      string                   `json:"email,omitempty" yaml:"email,omitempty"`
}

// Result is a generated report. A failed delivery is reported here and
// does not fail the report.
type Result struct {
	ID             *uuid.UUID                `json:"id,omitempty"`
	Outcome        *domain.SimulationOutcome `json:"outcome"`
	PDF            []byte                    `json:"-"`
	Filename       string                    `json:"filename"`
	EmailStatus    string                    `json:"email_status"`
	EmailID        string                    `json:"email_id,omitempty"`
	EmailError     string                    `json:"email_error,omitempty"`
	EmailRetryable bool                      `json:"email_retryable,omitempty"` // failed but may succeed if sent again
}

// Service computes a simulation, logs it, renders the PDF and mails it.
type Service struct {
	engine *calculation.CalculationEngine
	repo   store.SimulationRepository
	sender Sender
	logger zerolog.Logger
	now    func() time.Time
}

// NewService wires a report service. repo may be nil to skip the simulation log.
func NewService(engine *calculation.CalculationEngine, repo store.SimulationRepository, sender Sender, logger zerolog.Logger) *Service {
	if sender == nil {
		sender = LogSender{Logger: logger}
	}
	return &Service{engine: engine, repo: repo, sender: sender, logger: logger, now: time.Now}
}

// Generate runs the whole report pipeline.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, domain.NewValidationError("email", "%q is not an email address", req.Email)
		}
	}

	out, err := s.engine.Run(ctx, req.Simulation)
	if err != nil {
		return nil, err
	}

	res := &Result{Outcome: out, EmailStatus: EmailSkipped}
	if s.repo != nil {
		sim, err := s.repo.Create(ctx, req.Simulation, *out, req.Email)
		if err != nil {
			return nil, err
		}
		res.ID = &sim.ID
	}

	res.PDF, err = output.PDFFormatter{}.Format(out)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	res.Filename = fmt.Sprintf("simulation_%s_%s.pdf", out.Kind, s.now().Format("20060102"))

	if req.Email == "" {
		return res, nil
	}

	msg, err := s.message(req.Email, out, res)
	if err != nil {
		return nil, err
	}
	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		res.EmailStatus = EmailFailed
		res.EmailError = err.Error()
		res.EmailRetryable = retryable(err)
		s.logger.Warn().Err(err).Str("kind", string(out.Kind)).Bool("retryable", res.EmailRetryable).Msg("report email failed")
		return res, nil
	}
	s.logger.Info().Str("kind", string(out.Kind)).Str("email_id", id).Msg("report emailed")
	res.EmailStatus = EmailSent
	res.EmailID = id
	return res, nil
}

func (s *Service) message(to string, out *domain.SimulationOutcome, res *Result) (Message, error) {
	html, err := output.HTMLFormatter{}.Format(out)
	if err != nil {
		return Message{}, fmt.Errorf("failed to render email body: %w", err)
	}
	text, err := output.ConsoleLiteFormatter{}.Format(out)
	if err != nil {
		return Message{}, fmt.Errorf("failed to render email body: %w", err)
	}
	return Message{
		To:          to,
		Subject:     output.Title(out),
		HTML:        string(html),
		Text:        string(text),
		Attachments: []Attachment{{Filename: res.Filename, Content: res.PDF}},
	}, nil
}

// retryable reports whether a delivery failure is worth sending again.
// Errors that are not SendErrors count as temporary.
func retryable(err error) bool {
	var sendErr *SendError
	if errors.As(err, &sendErr) {
		return !sendErr.Permanent
	}
	return true
}
