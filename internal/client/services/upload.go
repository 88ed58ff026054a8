package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/imguploader/internal/client/clipboard"
	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/client/session"
	"github.com/dmitrijs2005/imguploader/internal/client/uploader"
	"github.com/dmitrijs2005/imguploader/internal/client/validator"
	"github.com/dmitrijs2005/imguploader/internal/logging"
)

// User-facing failure messages.
const (
	MsgUploadFailed   = "Upload failed, please try again"
	MsgUploadCanceled = "Upload canceled"
)

var (
	ErrBatchRejected = errors.New("batch contains files that are not allowed")
	ErrNotConfirmed  = errors.New("upload of the accepted files was not confirmed")
	ErrNoResultURL   = errors.New("no result link to copy")
)

// Source names the selection surface a batch came from. Both surfaces are
// handled identically.
type Source string

const (
	SourcePicker Source = "picker"
	SourceDrop   Source = "drop"
	SourceArgs   Source = "args"
)

// Transport sends accepted candidates to the image host.
type Transport interface {
	Upload(ctx context.Context, candidates []models.Candidate) (*uploader.Operation, error)
}

// ConfirmFunc is asked whether to upload the accepted part of a mixed
// batch under models.PolicyConfirm.
type ConfirmFunc func(accepted []models.Candidate, rejected []models.Rejection) bool

// SubmitReport describes what Submit did with a selection.
type SubmitReport struct {
	Source   Source
	Accepted []string
	Rejected []models.Rejection
	// Started is true when a new session generation began.
	Started bool
	Session session.Session
}

type UploadOption func(*UploadService)

func WithPartialPolicy(p models.PartialPolicy) UploadOption {
	return func(s *UploadService) { s.policy = p }
}

// WithStrictStatus makes any non-2xx response a failure.
func WithStrictStatus(strict bool) UploadOption {
	return func(s *UploadService) { s.strict = strict }
}

// WithHistory records successful uploads. A nil service disables history.
func WithHistory(h *HistoryService) UploadOption {
	return func(s *UploadService) { s.history = h }
}

func WithServiceLogger(l logging.Logger) UploadOption {
	return func(s *UploadService) {
		if l != nil {
			s.logger = l
		}
	}
}

// UploadService owns the upload workflow for one tracker.
type UploadService struct {
	transport Transport
	tracker   *session.Tracker
	clip      clipboard.Writer
	history   *HistoryService
	policy    models.PartialPolicy
	strict    bool
	logger    logging.Logger
}

func NewUploadService(transport Transport, tracker *session.Tracker, clip clipboard.Writer, opts ...UploadOption) *UploadService {
	s := &UploadService{
		transport: transport,
		tracker:   tracker,
		clip:      clip,
		policy:    models.PolicyProceed,
		logger:    logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit handles one selection. Files that are not allowed are reported in
// the returned SubmitReport. With no accepted file the session is left
// untouched. Otherwise, subject to the partial policy, any active upload is
// superseded and a new one starts in the background under ctx.
func (s *UploadService) Submit(ctx context.Context, source Source, candidates []models.Candidate, confirm ConfirmFunc) (SubmitReport, error) {
	outcome := validator.Validate(candidates)
	report := SubmitReport{
		Source:   source,
		Accepted: models.Names(outcome.Accepted),
		Rejected: outcome.Rejected,
		Session:  s.tracker.Current(),
	}

	for _, r := range outcome.Rejected {
		s.logger.Info(ctx, "file rejected", "source", source, "file", r.Name, "type", r.DeclaredType)
	}

	if !outcome.HasAccepted() {
		return report, nil
	}

	if outcome.HasRejected() {
		switch s.policy {
		case models.PolicyReject:
			return report, ErrBatchRejected
		case models.PolicyConfirm:
			if confirm == nil || !confirm(outcome.Accepted, outcome.Rejected) {
				return report, ErrNotConfirmed
			}
		}
	}

	ticket, sess := s.tracker.Start(ctx, report.Accepted)
	report.Started = true
	report.Session = sess

	log := s.logger.With("session", ticket.SessionID, "generation", ticket.Generation)
	log.Info(ctx, "upload started", "source", source, "files", len(outcome.Accepted),
		"bytes", models.TotalSize(outcome.Accepted))

	op, err := s.transport.Upload(ticket.Ctx, outcome.Accepted)
	if err != nil {
		log.Error(ctx, "upload could not start", "error", err)
		if failed, ferr := s.tracker.Fail(ticket.Generation, MsgUploadFailed); ferr == nil {
			report.Session = failed
		}
		return report, nil
	}

	go s.pump(ticket, op, outcome.Accepted, log)
	return report, nil
}

// pump forwards one operation's events into the tracker. Events of a
// superseded generation are dropped by the tracker.
func (s *UploadService) pump(ticket session.Ticket, op *uploader.Operation, uploaded []models.Candidate, log logging.Logger) {
	ctx := context.WithoutCancel(ticket.Ctx)

	for p := range op.Progress() {
		if _, err := s.tracker.Progress(ticket.Generation, p.Percent); errors.Is(err, session.ErrStaleGeneration) {
			log.Debug(ctx, "dropping progress of superseded upload", "percent", p.Percent)
		}
	}
	<-op.Done()
	s.finish(ctx, ticket, op.Result(), uploaded, log)
}

func (s *UploadService) finish(ctx context.Context, ticket session.Ticket, res uploader.Result, uploaded []models.Candidate, log logging.Logger) {
	log = log.With("request_id", res.RequestID)

	var err error
	switch {
	case errors.Is(res.Err, uploader.ErrCanceled):
		_, err = s.tracker.Fail(ticket.Generation, MsgUploadCanceled)

	case res.Err != nil:
		log.Warn(ctx, "upload failed", "error", res.Err)
		_, err = s.tracker.Fail(ticket.Generation, MsgUploadFailed)

	case s.strict && !res.StatusOK():
		log.Warn(ctx, "upload rejected by server", "status", res.StatusCode)
		_, err = s.tracker.Fail(ticket.Generation, fmt.Sprintf("server responded with status %d", res.StatusCode))

	default:
		if res.Malformed {
			log.Warn(ctx, "response body is not valid JSON", "status", res.StatusCode)
		} else if res.ImageURL == "" {
			log.Warn(ctx, "response carries no image URL", "status", res.StatusCode)
		}
		if res.HasURL() && s.history != nil {
			if _, herr := s.history.Record(ctx, ticket.SessionID, uploaded, res.ImageURL); herr != nil {
				log.Error(ctx, "failed to record upload history", "error", herr)
			}
		}
		_, err = s.tracker.Succeed(ticket.Generation, res.ImageURL)
		if err == nil {
			log.Info(ctx, "upload finished", "status", res.StatusCode, "url", res.ImageURL)
		}
	}

	if errors.Is(err, session.ErrStaleGeneration) {
		log.Debug(ctx, "dropping result of superseded upload")
	} else if err != nil {
		log.Error(ctx, "session rejected result", "error", err)
	}
}

// Current returns the active session.
func (s *UploadService) Current() session.Session { return s.tracker.Current() }

// Subscribe registers fn for session changes.
func (s *UploadService) Subscribe(fn session.Observer) { s.tracker.Subscribe(fn) }

// Wait blocks until the active upload ends or ctx is done.
func (s *UploadService) Wait(ctx context.Context) (session.Session, error) {
	return s.tracker.Wait(ctx)
}

// CopyLink copies the result link of a succeeded session verbatim and
// returns it.
func (s *UploadService) CopyLink(ctx context.Context) (string, error) {
	cur := s.tracker.Current()
	if cur.Status != session.StatusSucceeded || cur.ResultURL == "" {
		return "", ErrNoResultURL
	}
	if err := s.clip.WriteText(cur.ResultURL); err != nil {
		return "", fmt.Errorf("copy link: %w", err)
	}
	s.logger.Debug(ctx, "link copied", "session", cur.ID)
	return cur.ResultURL, nil
}

// History lists recent uploads.
func (s *UploadService) History(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}
