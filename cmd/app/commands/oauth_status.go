package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lovelifenow/admin-api/internal/config"
	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
	oauthUseCase "github.com/lovelifenow/admin-api/internal/oauth/usecase"
)

// oauthStatus is the reportable view of the stored token record. Token values
// are never printed.
type oauthStatus struct {
	Authorized bool   `json:"authorized"`
	Fresh      bool   `json:"fresh,omitempty"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// RunOAuthStatus reports whether a CRM token record exists and whether its
// access token is still fresh. Supports text and JSON output formats.
func RunOAuthStatus(
	ctx context.Context,
	tokenRepo oauthUseCase.TokenRepository,
	cfg *config.Config,
	logger *slog.Logger,
	w io.Writer,
	format string,
) error {
	status := oauthStatus{}

	record, err := tokenRepo.Get(ctx)
	switch {
	case errors.Is(err, oauthDomain.ErrNotAuthorized):
		// No record yet, report unauthorized
	case err != nil:
		return fmt.Errorf("failed to load token record: %w", err)
	default:
		status.Authorized = true
		status.Fresh = record.FreshAt(time.Now(), cfg.OAuthRefreshBuffer)
		status.ExpiresAt = time.UnixMilli(record.ExpiresAt).UTC().Format(time.RFC3339)
		status.UpdatedAt = record.UpdatedAt
	}

	logger.Info("oauth status",
		slog.Bool("authorized", status.Authorized),
		slog.Bool("fresh", status.Fresh),
	)

	if format == "json" {
		return outputOAuthStatusJSON(w, status)
	}
	outputOAuthStatusText(w, status)
	return nil
}

// outputOAuthStatusText outputs the status in human-readable text format.
func outputOAuthStatusText(w io.Writer, status oauthStatus) {
	if !status.Authorized {
		fmt.Fprintln(w, "Not authorized: no token record found, run the dashboard authorization flow")
		return
	}

	freshness := "stale (will refresh on next use)"
	if status.Fresh {
		freshness = "fresh"
	}

	fmt.Fprintf(w, "Authorized: access token %s\n", freshness)
	fmt.Fprintf(w, "Expires at: %s\n", status.ExpiresAt)
	fmt.Fprintf(w, "Updated at: %s\n", status.UpdatedAt)
}

// outputOAuthStatusJSON outputs the status in JSON format for machine consumption.
func outputOAuthStatusJSON(w io.Writer, status oauthStatus) error {
	jsonBytes, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonBytes))
	return nil
}
