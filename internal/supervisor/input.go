package supervisor

import "io"

// Input selects what the child reads on stdin.
type Input struct {
	reader io.Reader
	pipe   bool
}

// FromReader connects stdin to an existing stream. A nil reader connects the
// null device.
func FromReader(r io.Reader) Input {
	return Input{reader: r}
}

// Pipe gives the child a writable stdin pipe that stays open until
// Process.CloseInput is called or the start context is done.
func Pipe() Input {
	return Input{pipe: true}
}
