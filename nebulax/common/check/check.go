package check

import (
	"fmt"

	"github.com/NebulaX/nebulax/nebulax/common/logging"
)

// These functions are meant for author-time invariants, e.g. a deployment module
// referencing a future that was never declared. Runtime failures (missing
// configuration, a failed deployment) are returned as errors instead.

// PanicIff panics on true with the given message.
func PanicIff(flag bool, format string, args ...any) {
	PanicIfNotf(!flag, format, args...)
}

// PanicIfNotf panics on false with the given message.
func PanicIfNotf(flag bool, format string, args ...any) {
	if !flag {
		panic(fmt.Sprintf(format, args...))
	}
}

// PanicIfErr calls panic(err) if err is not nil.
func PanicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}

// LogAndPanicIfErrf logs the error with the provided logger and message and panics if err is not nil.
func LogAndPanicIfErrf(err error, logger logging.Logger, format string, args ...any) {
	if err != nil {
		l := logger.With().CallerWithSkipFrameCount(3).Logger()
		l.Error().Err(err).Msgf(format, args...)
		panic(err)
	}
}
