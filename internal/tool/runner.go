// Package tool invokes the external finding generator and remediation
// worker, either natively or through docker. The exit code is the whole
// contract; stdout and stderr are relayed to the logger.
package tool

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ErrUnavailable marks a tool binary (docker or a native command) that
// could not be found at all, as opposed to a tool that ran and failed.
var ErrUnavailable = errors.New("external tool not available")

// run executes argv in dir, relays its output to the logger and returns an
// error wrapping ErrUnavailable when the binary does not exist.
func run(ctx context.Context, logger hclog.Logger, argv []string, dir string) error {
	logger.Debug("running external tool", "argv", strings.Join(argv, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	relayLines(logger, &stdout, false)
	relayLines(logger, &stderr, true)

	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s: %w", argv[0], ErrUnavailable)
		}
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return nil
}

func relayLines(logger hclog.Logger, buf *bytes.Buffer, isStderr bool) {
	s := bufio.NewScanner(buf)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.Contains(line, "DEBUG"):
			logger.Debug(line)
		case strings.Contains(line, "WARN"):
			logger.Warn(line)
		case strings.Contains(line, "ERROR") || isStderr:
			logger.Error(line)
		default:
			logger.Info(line)
		}
	}
}

// readEnvFlags turns a .env file into docker -e flags. Blank lines and
// comments are skipped; a missing file yields no flags.
func readEnvFlags(envFile string) []string {
	var flags []string
	data, err := os.ReadFile(envFile)
	if err != nil {
		return nil
	}
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			flags = append(flags, "-e", line)
		}
	}
	return flags
}
