package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/imguploader/internal/client/services"
	"github.com/dmitrijs2005/imguploader/internal/client/session"
)

var (
	ErrNothingUploaded = errors.New("nothing was uploaded")
	ErrUploadFailed    = errors.New("upload failed")
)

// RunOnce uploads the configured files, waits for the outcome and prints
// the link. It fails when no file was accepted or the upload failed.
func (a *App) RunOnce(ctx context.Context) error {
	rep, err := a.submit(ctx, services.SourceArgs, a.config.Files)
	if err != nil && !errors.Is(err, errNothingSelected) {
		return err
	}
	if !rep.Started {
		return ErrNothingUploaded
	}

	s, err := a.uploads.Wait(ctx)
	if err != nil {
		return err
	}

	switch s.Status {
	case session.StatusFailed:
		return fmt.Errorf("%w: %s", ErrUploadFailed, s.ErrorMessage)
	case session.StatusSucceeded:
		if s.ResultURL != "" && a.config.CopyOnSuccess {
			return a.Copy(ctx)
		}
		return nil
	}
	return fmt.Errorf("upload ended in state %s", s.Status)
}
