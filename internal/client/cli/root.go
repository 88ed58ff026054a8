package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/imguploader/internal/client/session"
)

func (a *App) getStatus() string {
	s := a.uploads.Current()
	switch s.Status {
	case session.StatusUploading:
		return fmt.Sprintf(" (uploading %.0f%%)", s.ProgressPercent)
	case session.StatusSucceeded:
		return " (done)"
	case session.StatusFailed:
		return " (failed)"
	}
	return ""
}

// Root runs the REPL until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	a.interactive = true
	a.printf("Image uploader, sending to %s (type 'help' for commands)\n", a.config.BackendURL)
	runREPL(ctx, a, a.getStatus, a.scanner)
}
