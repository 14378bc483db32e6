//go:build gcloud

package reminderapi

import (
	"context"
	"log/slog"
	"net/http"

	"google.golang.org/api/idtoken"
)

// newHTTPClient signs requests with an ID token whose audience is the
// reminders API, for deployments where the web app sits behind IAM.
func newHTTPClient(audience string) *http.Client {
	httpClient, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Warn("idtoken client unavailable, using unauthenticated client",
			slog.String("audience", audience),
			slog.String("error", err.Error()),
		)
		return &http.Client{
			Timeout: requestTimeout,
		}
	}
	httpClient.Timeout = requestTimeout
	return httpClient
}
