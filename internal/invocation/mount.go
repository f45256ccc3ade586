package invocation

import "fmt"

// Mode is the access mode of a bind mount.
type Mode string

const (
	ModeReadOnly  Mode = "ro"
	ModeReadWrite Mode = "rw"
	ModeCached    Mode = "cached"
	ModeDelegated Mode = "delegated"
)

// Mount exposes a host path at a fixed container path.
type Mount struct {
	HostPath      string
	ContainerPath string
	Mode          Mode
}

// String renders the mount in the runtime's -v syntax.
func (m Mount) String() string {
	return fmt.Sprintf("%s:%s:%s", m.HostPath, m.ContainerPath, m.Mode)
}

// Args renders the runtime arguments declaring the mount.
func (m Mount) Args() []string {
	return []string{"-v", m.String()}
}
