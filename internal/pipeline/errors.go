package pipeline

import "fmt"

// FetchFailure: a source returned nothing because of a network or parse
// error. The report renders without that source.
type FetchFailure struct {
	Source string
	Err    error
}

func (e *FetchFailure) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchFailure) Unwrap() error { return e.Err }

// TranslationFailure: a name could not be translated and is shown as sourced.
type TranslationFailure struct {
	Name string
	Err  error
}

func (e *TranslationFailure) Error() string {
	return fmt.Sprintf("translate %q: %v", e.Name, e.Err)
}

func (e *TranslationFailure) Unwrap() error { return e.Err }

// ScoringFailure: one fixture has no prediction; the rest of the report is kept.
type ScoringFailure struct {
	Fixture string
	Err     error
}

func (e *ScoringFailure) Error() string {
	return fmt.Sprintf("score %s: %v", e.Fixture, e.Err)
}

func (e *ScoringFailure) Unwrap() error { return e.Err }

// DeliveryFailure: the gateway refused or failed one message. Not retried.
type DeliveryFailure struct {
	Recipient string
	Reason    string
}

func (e *DeliveryFailure) Error() string {
	return fmt.Sprintf("deliver to %s: %s", e.Recipient, e.Reason)
}

// ConfigurationError stops the service at startup.
type ConfigurationError struct {
	Component string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration (%s): %v", e.Component, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
