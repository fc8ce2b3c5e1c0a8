// Package cli provides the command-line interface for the purify application.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/law-makers/purify/internal/app"
)

// ctxKey is used for storing app context in cobra commands
type ctxKey string

const appKey ctxKey = "app"

// WithApp returns a copy of ctx carrying a.
func WithApp(ctx context.Context, a *app.Application) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// SetApp stores the Application in the command's context
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(WithApp(ctx, a))
}

// GetAppFromCmd retrieves the Application from the command's context
func GetAppFromCmd(cmd *cobra.Command) *app.Application {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(appKey).(*app.Application)
	return a
}
