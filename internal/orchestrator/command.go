package orchestrator

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docbuild/internal/invocation"
)

// Container paths and names fixed by the image layout.
const (
	ToolPath        = "/docs_build"
	ContainerPrefix = "docbuild-"
)

// Command is a fully assembled container runtime invocation.
type Command struct {
	Program       string
	Args          []string
	ContainerName string
	Plan          *invocation.Plan
}

// String renders the command for display, quoting arguments that need it.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Program))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\$`") {
		return strconv.Quote(s)
	}
	return s
}

// runArgs lays out: run flags, plan runtime args, image, entrypoint, tool args.
func (o *Orchestrator) runArgs(name string, plan *invocation.Plan) []string {
	tool := invocation.Mount{HostPath: o.cfg.ToolDir, ContainerPath: ToolPath, Mode: invocation.ModeCached}

	args := []string{"run", "--rm", "-i", "--name", name, "--tmpfs", "/tmp"}
	args = append(args, tool.Args()...)
	args = append(args, plan.RuntimeArgs...)
	args = append(args, o.cfg.Image)
	args = append(args, o.cfg.Entrypoint...)
	args = append(args, plan.ToolArgs...)
	return args
}

func (o *Orchestrator) imageArgs() []string {
	return []string{"image", "build", "-t", o.cfg.Image, "-f", o.cfg.RecipePath(), o.cfg.Context}
}
