//go:build !gcloud

package config

// Enabled reports whether push task delivery is configured.
func (c *TaskQueueConfig) Enabled() bool {
	return c.PushTasksURL != ""
}

func (c *TaskQueueConfig) Validate() error {
	return nil
}
