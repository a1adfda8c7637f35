// Package testlog switches the process logger into the test profile and
// tags the log stream with the running test's name.
package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/bitzl/esrgan-test/internal/logging"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("start")
}
