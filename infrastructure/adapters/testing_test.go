package adapters

import "github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"

type nopLogger struct{}

func (nopLogger) Info(string)                                       {}
func (nopLogger) InfoWithFields(string, map[string]interface{})     {}
func (nopLogger) Error(error, string)                               {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {
}
func (nopLogger) Debug(string)                                   {}
func (nopLogger) DebugWithFields(string, map[string]interface{}) {}
func (nopLogger) Warn(string)                                    {}
func (nopLogger) WarnWithFields(string, map[string]interface{})  {}

var _ outbound.LoggerPort = nopLogger{}

// inlineDispatcher runs submitted tasks synchronously.
type inlineDispatcher struct{}

func (inlineDispatcher) Submit(task func()) error {
	task()

	return nil
}

var _ outbound.TaskDispatcher = inlineDispatcher{}
