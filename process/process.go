package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultGracePeriod is the SIGTERM to SIGKILL delay when a Command sets none.
const DefaultGracePeriod = 5 * time.Second

// ErrBinaryNotFound is returned when Command.Binary cannot be resolved.
var ErrBinaryNotFound = errors.New("process: binary not found")

// Command is one subprocess invocation.
type Command struct {
	Binary string
	Args   []string
	// Dir defaults to the current directory.
	Dir string
	// Env entries (KEY=value) are appended to the parent environment.
	Env   []string
	Stdin io.Reader
	// GracePeriod is how long a canceled process gets between SIGTERM and SIGKILL.
	GracePeriod time.Duration
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.TrimSpace(c.Binary + " " + strings.Join(c.Args, " "))
}

// Result is what a finished subprocess left behind. ExitCode is -1 when
// the process was killed by a signal.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Output returns stdout without surrounding whitespace.
func (r *Result) Output() string {
	return strings.TrimSpace(string(r.Stdout))
}

// Available reports whether binary resolves on PATH or as a path.
func Available(binary string) bool {
	if binary == "" {
		return false
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// Run starts cmd and waits for it. Canceling ctx sends SIGTERM to the
// process group and SIGKILL once the grace period runs out. A non-zero
// exit returns the Result together with an error carrying the first line
// of stderr.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("process: binary is required")
	}
	if !Available(cmd.Binary) {
		return nil, fmt.Errorf("%w: %s", ErrBinaryNotFound, cmd.Binary)
	}

	var stdout, stderr bytes.Buffer
	c := prepare(ctx, cmd, &stdout, &stderr)

	start := time.Now()
	err := c.Run()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, fmt.Errorf("process: %s killed: %w", cmd.Binary, ctx.Err())
	case res.ExitCode > 0:
		if line := firstLine(res.Stderr); line != "" {
			return res, fmt.Errorf("process: %s exited with %d: %s", cmd.Binary, res.ExitCode, line)
		}
		return res, fmt.Errorf("process: %s exited with %d", cmd.Binary, res.ExitCode)
	default:
		return res, fmt.Errorf("process: %s: %w", cmd.Binary, err)
	}
}

func prepare(ctx context.Context, cmd Command, stdout, stderr io.Writer) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // running configured binaries is the point
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Stdin = cmd.Stdin
	c.Stdout = stdout
	c.Stderr = stderr

	// Own process group, so cancellation reaches children (arecord under sh).
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = cmd.GracePeriod
	if c.WaitDelay <= 0 {
		c.WaitDelay = DefaultGracePeriod
	}
	return c
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
