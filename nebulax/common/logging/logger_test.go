package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponentsFilter(t *testing.T) {
	SetupGlobalLogger("debug")

	resolverBuf := new(bytes.Buffer)
	executorBuf := new(bytes.Buffer)
	journalBuf := new(bytes.Buffer)

	resolver := NewLoggerWithWriter("resolver", resolverBuf)
	executor := NewLoggerWithWriter("executor", executorBuf)
	journal := NewLoggerWithWriter("journal", journalBuf)

	msgIndex := 0
	emitLogs := func() {
		resolverBuf.Reset()
		executorBuf.Reset()
		journalBuf.Reset()
		msgIndex++
		resolver.Warn().Msgf("resolver message %d", msgIndex)
		executor.Warn().Msgf("executor message %d", msgIndex)
		journal.Warn().Msgf("journal message %d", msgIndex)
	}

	ApplyComponentsFilter("-all")
	emitLogs()
	require.Equal(t, 0, resolverBuf.Len())
	require.Equal(t, 0, executorBuf.Len())
	require.Equal(t, 0, journalBuf.Len())

	ApplyComponentsFilter("all:-resolver")
	emitLogs()
	require.Equal(t, 0, resolverBuf.Len())
	require.Contains(t, executorBuf.String(), fmt.Sprintf("executor message %d", msgIndex))
	require.Contains(t, journalBuf.String(), fmt.Sprintf("journal message %d", msgIndex))

	ApplyComponentsFilter("resolver:-all")
	emitLogs()
	require.Equal(t, 0, resolverBuf.Len())
	require.Equal(t, 0, executorBuf.Len())
	require.Equal(t, 0, journalBuf.Len())

	ApplyComponentsFilter("-all:-journal:all")
	emitLogs()
	require.Contains(t, resolverBuf.String(), fmt.Sprintf("resolver message %d", msgIndex))
	require.Contains(t, executorBuf.String(), fmt.Sprintf("executor message %d", msgIndex))
	require.Contains(t, journalBuf.String(), fmt.Sprintf("journal message %d", msgIndex))

	logBuf := new(bytes.Buffer)
	ApplyComponentsFilter("-solc")
	solc := NewLoggerWithWriter("solc", logBuf)
	solc.Warn().Msg("solc message")
	require.Equal(t, 0, logBuf.Len())

	ApplyComponentsFilter("solc")
	solc.Warn().Msg("solc message")
	require.Contains(t, logBuf.String(), "solc message")
	require.Contains(t, logBuf.String(), `"component":"solc"`)
}
