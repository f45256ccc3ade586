package commands

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Args []string `arg:"" optional:"" help:"Arguments for the build tool (--doc, --out, --open, ...)"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	o, flush := g.newOrchestrator(cfg)
	defer flush()
	return o.Run(g.Context, b.Args)
}
