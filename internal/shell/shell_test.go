package shell_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psanford/generals/internal/cluster"
	"github.com/psanford/generals/internal/config"
	"github.com/psanford/generals/internal/logging"
	"github.com/psanford/generals/internal/shell"
)

func newShell(t *testing.T, input string) (*bytes.Buffer, *shell.Shell) {
	cfg := config.Config{BasePort: 19900, AuthorTag: "generals simulator"}
	cl := cluster.New(cfg, logging.New(false, io.Discard))
	out := new(bytes.Buffer)
	sh := shell.New(cl, cfg, strings.NewReader(input), out, logging.New(false, io.Discard), func() {})
	return out, sh
}

func TestShell_Help(t *testing.T) {
	out, sh := newShell(t, "help\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Supported commands: actual-order, g-state, g-kill, g-add, help, whoami, exit")
}

func TestShell_Whoami(t *testing.T) {
	out, sh := newShell(t, "whoami\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "generals simulator")
}

func TestShell_UnknownCommand(t *testing.T) {
	out, sh := newShell(t, "frobnicate\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "frobnicate: command not found")
}

func TestShell_EmptyLineReprompts(t *testing.T) {
	out, sh := newShell(t, "\nhelp\n")
	require.NoError(t, sh.Run(context.Background()))
	// two prompts before help's output, one after: "$ $ Supported...$ "
	assert.Contains(t, out.String(), "$ $ ")
}

func TestShell_ActualOrderUsage(t *testing.T) {
	out, sh := newShell(t, "actual-order sideways\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Usage: actual-order [attack/retreat]")
}

func TestShell_ActualOrderNoCoordinatorYet(t *testing.T) {
	out, sh := newShell(t, "actual-order attack\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "No primary general is elected, try again later.")
}

func TestShell_GStateUnknownID(t *testing.T) {
	out, sh := newShell(t, "g-state 42 faulty\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "General with id 42 doesn't exist")
}

func TestShell_GStateUsage(t *testing.T) {
	out, sh := newShell(t, "g-state 1 sideways\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Usage: g-state [ID] [faulty/non-faulty]")
}

func TestShell_GAddUsage(t *testing.T) {
	out, sh := newShell(t, "g-add zero\n")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Usage: g-add [K]")
}
