package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/imguploader/internal/client/client"
	"github.com/dmitrijs2005/imguploader/internal/client/clipboard"
	"github.com/dmitrijs2005/imguploader/internal/client/config"
	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/client/services"
	"github.com/dmitrijs2005/imguploader/internal/client/session"
	"github.com/dmitrijs2005/imguploader/internal/client/uploader"
	"github.com/dmitrijs2005/imguploader/internal/logging"
	"golang.org/x/term"
)

// uploadService is the part of services.UploadService the CLI drives.
type uploadService interface {
	Submit(ctx context.Context, source services.Source, candidates []models.Candidate, confirm services.ConfirmFunc) (services.SubmitReport, error)
	Current() session.Session
	Subscribe(fn session.Observer)
	Wait(ctx context.Context) (session.Session, error)
	CopyLink(ctx context.Context) (string, error)
	History(ctx context.Context, limit int) ([]models.HistoryRecord, error)
}

type App struct {
	config   *config.Config
	uploads  uploadService
	repos    *client.Repositories
	logger   logging.Logger
	scanner  *bufio.Scanner
	out      io.Writer
	progress *progressView

	interactive bool

	mu     sync.Mutex
	notice string
}

// NewApp wires the uploader, tracker, clipboard and optional history
// database described by c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	up, err := uploader.New(c.BackendURL,
		uploader.WithFieldName(c.FormField),
		uploader.WithURLField(c.URLField),
		uploader.WithTimeout(c.RequestTimeout),
		uploader.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	opts := []services.UploadOption{
		services.WithPartialPolicy(c.PartialPolicy),
		services.WithStrictStatus(c.StrictStatus),
		services.WithServiceLogger(logger),
	}

	var repos *client.Repositories
	if c.HistoryEnabled() {
		repos, err = client.InitDatabase(ctx, c.HistoryDB)
		if err != nil {
			logger.Warn(ctx, "upload history disabled", "path", c.HistoryDB, "error", err)
		} else {
			opts = append(opts, services.WithHistory(services.NewHistoryService(repos.DB, c.HistoryLimit)))
		}
	}

	svc := services.NewUploadService(up, session.NewTracker(), clipboard.NewSystem(), opts...)
	tty := term.IsTerminal(int(os.Stdout.Fd()))

	return newApp(c, svc, repos, logger, os.Stdin, os.Stdout, tty), nil
}

func newApp(c *config.Config, svc uploadService, repos *client.Repositories, logger logging.Logger, in io.Reader, out io.Writer, tty bool) *App {
	a := &App{
		config:   c,
		uploads:  svc,
		repos:    repos,
		logger:   logger,
		scanner:  bufio.NewScanner(in),
		out:      out,
		progress: newProgressView(out, tty),
	}
	svc.Subscribe(a.onSessionChange)
	return a
}

// Run uploads the configured files once when there are any, otherwise it
// starts the REPL.
func (a *App) Run(ctx context.Context) error {
	if len(a.config.Files) > 0 {
		return a.RunOnce(ctx)
	}
	a.Root(ctx)
	return nil
}

// Close releases the history database.
func (a *App) Close() error {
	if a.repos == nil {
		return nil
	}
	return a.repos.Close()
}

func (a *App) onSessionChange(s session.Session) {
	switch s.Status {
	case session.StatusUploading:
		a.progress.update(s.ProgressPercent)

	case session.StatusSucceeded:
		a.progress.finish()
		if s.ResultURL == "" {
			a.printf("Upload complete, but the server returned no link\n")
			return
		}
		a.printf("Upload complete: %s\n", s.ResultURL)
		if a.interactive {
			a.printf("Type 'copy' to copy the link\n")
		}

	case session.StatusFailed:
		a.progress.finish()
		a.setNotice(s.ErrorMessage)

	case session.StatusIdle:
		a.progress.finish()
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// setNotice shows msg once and keeps it until dismissed.
func (a *App) setNotice(msg string) {
	a.mu.Lock()
	a.notice = msg
	a.mu.Unlock()
	a.printf("! %s (type 'dismiss' to clear)\n", msg)
}

func (a *App) currentNotice() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notice
}
