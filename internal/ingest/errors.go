package ingest

import "fmt"

// ConfigError reports a credential or required parameter that is absent.
// It is raised before any network call is made, so a run failing with a
// ConfigError has touched neither the upstream API nor the store.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string {
	return e.Name + " required"
}

// UpstreamError reports a non-success response from an external API during a
// page fetch. It aborts the remainder of the run.
type UpstreamError struct {
	Source string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API %d: %s", e.Source, e.Status, e.Body)
}
