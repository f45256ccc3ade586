package commands

import "fmt"

// PlanCmd prints the runtime command without running it.
type PlanCmd struct {
	Args []string `arg:"" optional:"" help:"Arguments for the build tool"`
}

func (p *PlanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.load(g)
	if err != nil {
		return err
	}
	o, _ := g.newOrchestrator(cfg)
	cmd, err := o.Plan(p.Args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(g.Stdout, cmd.String())
	return err
}
