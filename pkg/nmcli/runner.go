package nmcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Runner abstracts nmcli subprocess invocation so the client can be tested
// without NetworkManager present.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// execRunner invokes the real binary. Every call is bounded by the
// configured timeout so a wedged NetworkManager cannot hang the whole run.
type execRunner struct {
	binPath string
	timeout time.Duration
	log     logr.Logger
}

func newExecRunner(binPath string, timeout time.Duration, log logr.Logger) *execRunner {
	return &execRunner{
		binPath: binPath,
		timeout: timeout,
		log:     log,
	}
}

func (r *execRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.log.V(1).Info("running nmcli", "args", redactArgs(args))

	cmd := exec.CommandContext(ctx, r.binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return nil, NewToolUnavailableError(r.binPath, err)
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	// CommandContext reports a killed process, not the deadline that
	// killed it; surface the timeout explicitly.
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &ToolError{
			Type:     ErrorTypeToolError,
			Message:  "timed out after " + r.timeout.String(),
			Args:     args,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			ExitCode: exitCode,
			Err:      context.DeadlineExceeded,
		}
	}

	return nil, NewToolExitError(args, stdout.String(), stderr.String(), exitCode, err)
}

// redactArgs hides passphrase values so debug logs never carry secrets.
func redactArgs(args []string) string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "wifi-sec.psk" {
			out[i+1] = "<redacted>"
		}
	}
	return strings.Join(out, " ")
}
