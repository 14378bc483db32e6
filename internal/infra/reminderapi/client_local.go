//go:build !gcloud

package reminderapi

import (
	"net/http"
)

func newHTTPClient(_ string) *http.Client {
	return &http.Client{
		Timeout: requestTimeout,
	}
}
