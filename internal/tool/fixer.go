package tool

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/buglens/buglens/internal/config"
)

// Fixer invokes the external remediation worker on a single-finding report.
// The worker's exit code is its only result; its output goes to the logger.
type Fixer struct {
	cfg    config.ToolConfig
	dir    string
	debug  bool
	logger hclog.Logger
}

// NewFixer creates a Fixer operating on the given working tree.
func NewFixer(cfg config.ToolConfig, dir string, debug bool, logger hclog.Logger) *Fixer {
	return &Fixer{cfg: cfg, dir: dir, debug: debug, logger: logger}
}

// Fix applies the fix described by the single-finding report at unitPath.
// unitPath must live inside the working tree so the dockerized worker can
// see it through the /src mount.
func (f *Fixer) Fix(ctx context.Context, unitPath string, autoCommit bool) error {
	argv := f.buildArgv(unitPath, autoCommit)
	if err := run(ctx, f.logger, argv, f.dir); err != nil {
		return fmt.Errorf("fix worker: %w", err)
	}
	return nil
}

func (f *Fixer) buildArgv(unitPath string, autoCommit bool) []string {
	var argv []string
	if f.cfg.DockerImage != "" {
		argv = []string{"docker", "run", "--rm", "-i"}
		argv = append(argv, readEnvFlags(f.cfg.EnvFile)...)
		argv = append(argv,
			"-e", fmt.Sprintf("ORIGINAL_SRC_DIR_NAME=%s", filepath.Base(f.dir)),
			"-v", fmt.Sprintf("%s:/src", f.dir),
			"-w", "/src", // the worker runs git from the mounted tree
			"--entrypoint", f.cfg.Entrypoint,
			f.cfg.DockerImage,
			"--single-bug-xml", filepath.Join("/src", filepath.Base(unitPath)),
		)
	} else {
		argv = []string{f.cfg.Command, "--single-bug-xml", unitPath}
	}
	if autoCommit {
		argv = append(argv, "--auto-commit")
	}
	if f.debug {
		argv = append(argv, "--debug")
	}
	return argv
}
