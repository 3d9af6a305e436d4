// Package gitx holds the small amount of git plumbing the CLI needs before
// handing off to the external tools.
package gitx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Client interacts with Git repositories
type Client struct {
	logger hclog.Logger
}

// NewClient creates a new Git client
func NewClient(logger hclog.Logger) *Client {
	return &Client{logger: logger}
}

// IsRepository reports whether dir is inside a git work tree.
func (c *Client) IsRepository(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// CurrentBranch returns the checked-out branch name in dir.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("resolving current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// UpstreamBranch returns the remote tracking branch for the current branch.
func (c *Client) UpstreamBranch(ctx context.Context, dir string) (string, error) {
	branch, err := c.CurrentBranch(ctx, dir)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("no upstream branch found for %s: %w", branch, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Target identifies what the finding generator should analyze. Exactly one
// of the fields is normally set; an empty Target means HEAD.
type Target struct {
	Commit      string
	WorkingTree bool
	BranchDiff  string
	RemoteDiff  bool
}

// Describe returns the human-readable label used in logs and prompts.
func (t Target) Describe() string {
	switch {
	case t.RemoteDiff:
		return "diff between local branch and its remote counterpart"
	case t.BranchDiff != "":
		return fmt.Sprintf("diff between current branch and %s", t.BranchDiff)
	case t.WorkingTree:
		return "working tree changes"
	case t.Commit != "":
		return fmt.Sprintf("commit %s", t.Commit)
	}
	return "commit HEAD"
}

// Flags returns the generator CLI flags selecting this target.
func (t Target) Flags() []string {
	switch {
	case t.RemoteDiff:
		return []string{"--remote-diff"}
	case t.BranchDiff != "":
		return []string{"--branch-diff", t.BranchDiff}
	case t.WorkingTree:
		return []string{"--working-tree"}
	case t.Commit != "":
		return []string{"--commit", t.Commit}
	}
	return nil
}
