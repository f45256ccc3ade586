package invocation

// Plan is the result of translating one build command line.
type Plan struct {
	// RuntimeArgs go to the container runtime's run command, before the image.
	RuntimeArgs []string
	// ToolArgs go to the inner build tool, after the entrypoint.
	ToolArgs []string
	// Mounts lists every mount declared in RuntimeArgs, in order.
	Mounts []Mount
	// ExpectedExitCode is 1 when --help was requested, 0 otherwise.
	ExpectedExitCode int
	// OpenBrowserOnReady asks the output moderator to open the preview.
	OpenBrowserOnReady bool
}

// MountAt returns the mount bound to containerPath.
func (p *Plan) MountAt(containerPath string) (Mount, bool) {
	for _, m := range p.Mounts {
		if m.ContainerPath == containerPath {
			return m, true
		}
	}
	return Mount{}, false
}
