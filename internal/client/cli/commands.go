package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/client/services"
	"github.com/dmitrijs2005/imguploader/internal/client/session"
	"github.com/dmitrijs2005/imguploader/internal/filex"
)

var errNothingSelected = errors.New("no files selected")

const defaultHistoryRows = 10

// Pick is the file chooser: it prompts for one or more paths.
func (a *App) Pick(ctx context.Context) error {
	line, err := GetSimpleText(ctx, a.scanner, "Image path(s), separated by spaces:", a.out)
	if err != nil {
		return err
	}
	_, err = a.submit(ctx, services.SourcePicker, SplitPaths(line))
	return err
}

// Drop takes paths the terminal pasted for dropped files.
func (a *App) Drop(ctx context.Context, paths []string) error {
	_, err := a.submit(ctx, services.SourceDrop, paths)
	return err
}

func (a *App) submit(ctx context.Context, source services.Source, paths []string) (services.SubmitReport, error) {
	if len(paths) == 0 {
		a.printf("No files selected\n")
		return services.SubmitReport{Source: source}, errNothingSelected
	}

	var problems []string
	candidates := make([]models.Candidate, 0, len(paths))
	for _, p := range paths {
		c, err := filex.LoadCandidate(p)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Cannot read %s", p))
			a.logger.Debug(ctx, "cannot read file", "path", p, "error", err)
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		a.setNotice(strings.Join(problems, "; "))
		return services.SubmitReport{Source: source}, errNothingSelected
	}

	confirm := func(accepted []models.Candidate, rejected []models.Rejection) bool {
		return a.confirmPartial(ctx, accepted, rejected)
	}
	rep, err := a.uploads.Submit(ctx, source, candidates, confirm)

	for _, r := range rep.Rejected {
		problems = append(problems, fmt.Sprintf("%s: %s", r.Name, r.Reason))
	}
	if len(problems) > 0 {
		a.setNotice(strings.Join(problems, "; "))
	}

	switch {
	case errors.Is(err, services.ErrBatchRejected):
		a.printf("Nothing uploaded: the selection contains files that are not allowed\n")
	case errors.Is(err, services.ErrNotConfirmed):
		a.printf("Upload cancelled\n")
	case err != nil:
		a.printf("Upload error: %v\n", err)
	case rep.Started:
		a.printf("Uploading %s\n", strings.Join(rep.Accepted, ", "))
	}
	return rep, err
}

func (a *App) confirmPartial(ctx context.Context, accepted []models.Candidate, rejected []models.Rejection) bool {
	prompt := fmt.Sprintf("%d file(s) not allowed. Upload the other %d anyway?", len(rejected), len(accepted))
	ok, err := GetConfirmation(ctx, a.scanner, prompt, a.out)
	return err == nil && ok
}

// Status prints the active session and any notice.
func (a *App) Status(ctx context.Context) error {
	s := a.uploads.Current()
	switch s.Status {
	case session.StatusIdle:
		a.printf("No upload yet\n")
	case session.StatusUploading:
		a.printf("Uploading %s: %s\n", strings.Join(s.Files, ", "), renderBar(s.ProgressPercent, barWidth))
	case session.StatusSucceeded:
		if s.ResultURL == "" {
			a.printf("Uploaded %s, no link returned\n", strings.Join(s.Files, ", "))
		} else {
			a.printf("Uploaded %s: %s\n", strings.Join(s.Files, ", "), s.ResultURL)
		}
	case session.StatusFailed:
		a.printf("Failed: %s\n", s.ErrorMessage)
	}
	if n := a.currentNotice(); n != "" {
		a.printf("! %s\n", n)
	}
	return nil
}

// Copy puts the result link on the clipboard.
func (a *App) Copy(ctx context.Context) error {
	url, err := a.uploads.CopyLink(ctx)
	if errors.Is(err, services.ErrNoResultURL) {
		a.printf("There is no link to copy\n")
		return err
	}
	if err != nil {
		a.printf("Could not copy the link: %v\n", err)
		return err
	}
	a.printf("Copied %s\n", url)
	return nil
}

// Dismiss clears the notice.
func (a *App) Dismiss(ctx context.Context) error {
	a.mu.Lock()
	a.notice = ""
	a.mu.Unlock()
	return nil
}

// History lists recent uploads; args may hold a row limit.
func (a *App) History(ctx context.Context, args []string) error {
	limit := defaultHistoryRows
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			a.printf("Usage: history [count]\n")
			return fmt.Errorf("bad history count %q", args[0])
		}
		limit = n
	}

	recs, err := a.uploads.History(ctx, limit)
	if errors.Is(err, services.ErrHistoryDisabled) {
		a.printf("Upload history is disabled\n")
		return err
	}
	if err != nil {
		a.printf("Could not read history: %v\n", err)
		return err
	}
	if len(recs) == 0 {
		a.printf("No uploads yet\n")
		return nil
	}
	for _, r := range recs {
		a.printf("%s  %s  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ImageURL, strings.Join(r.Files, ", "))
	}
	return nil
}
