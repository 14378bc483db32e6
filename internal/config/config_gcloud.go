//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Enabled reports whether Cloud Tasks delivery is configured.
func (c *TaskQueueConfig) Enabled() bool {
	return c.GCloudQueueID != ""
}

func (c *TaskQueueConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}

	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required"))
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, errors.New("GCLOUD_LOCATION_ID is required"))
	}
	if c.GCloudTargetURL == "" {
		errs = append(errs, errors.New("GCLOUD_TARGET_URL is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
