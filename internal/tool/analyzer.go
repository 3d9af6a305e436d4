package tool

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/buglens/buglens/internal/config"
	"github.com/buglens/buglens/internal/gitx"
)

// Analyzer invokes the external finding generator. A non-zero exit is a
// generation error and is fatal to the caller: no partial processing.
type Analyzer struct {
	cfg    config.ToolConfig
	dir    string
	debug  bool
	logger hclog.Logger
}

// NewAnalyzer creates an Analyzer operating on the given working tree.
func NewAnalyzer(cfg config.ToolConfig, dir string, debug bool, logger hclog.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, dir: dir, debug: debug, logger: logger}
}

// Run produces a bug analysis report for target at the output path.
func (a *Analyzer) Run(ctx context.Context, target gitx.Target, output string) error {
	argv := a.buildArgv(target, output)
	if err := run(ctx, a.logger, argv, a.dir); err != nil {
		return fmt.Errorf("bug analyzer: %w", err)
	}
	a.logger.Info("bug analysis report created", "path", output)
	return nil
}

func (a *Analyzer) buildArgv(target gitx.Target, output string) []string {
	if a.cfg.DockerImage != "" {
		// no -t to avoid color escapes ending up in logs
		argv := []string{"docker", "run", "--rm", "-i"}
		argv = append(argv, readEnvFlags(a.cfg.EnvFile)...)
		argv = append(argv,
			"-e", fmt.Sprintf("ORIGINAL_SRC_DIR_NAME=%s", filepath.Base(a.dir)),
			"-v", fmt.Sprintf("%s:/src", a.dir),
			"--entrypoint", a.cfg.Entrypoint,
			a.cfg.DockerImage,
			"--directory", "/src",
			"--output", output,
		)
		argv = append(argv, target.Flags()...)
		if a.debug {
			argv = append(argv, "--debug")
		}
		return argv
	}

	argv := []string{a.cfg.Command, "--directory", a.dir, "--output", output}
	argv = append(argv, target.Flags()...)
	if a.debug {
		argv = append(argv, "--debug")
	}
	return argv
}
