package commands

// ImageCmd implements the 'image' command.
type ImageCmd struct{}

func (i *ImageCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	cfg.SkipImageBuild = false
	o, flush := g.newOrchestrator(cfg)
	defer flush()
	return o.BuildImage(g.Context)
}
