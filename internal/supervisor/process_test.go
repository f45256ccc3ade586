package supervisor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const helperEnv = "DOCBUILD_SUPERVISOR_HELPER"

// TestMain lets the test binary double as the supervised child.
func TestMain(m *testing.M) {
	if mode := os.Getenv(helperEnv); mode != "" {
		os.Exit(helper(mode, os.Args[1:]))
	}
	os.Exit(m.Run())
}

func helper(mode string, args []string) int {
	switch mode {
	case "echo":
		// Alternate streams to check ordering on the shared pipe.
		for i, a := range args {
			if i%2 == 0 {
				fmt.Fprintln(os.Stdout, a)
			} else {
				fmt.Fprintln(os.Stderr, a)
			}
		}
		return 0
	case "exit":
		code, _ := strconv.Atoi(args[0])
		fmt.Fprint(os.Stdout, "no newline at end")
		return code
	case "crlf":
		fmt.Fprint(os.Stdout, "first\r\nsecond\r\n")
		return 0
	case "invalid":
		os.Stdout.Write([]byte{'o', 'k', 0xff, '\n'})
		return 0
	case "until-eof":
		fmt.Fprintln(os.Stdout, "waiting")
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			fmt.Fprintln(os.Stdout, "got "+sc.Text())
		}
		fmt.Fprintln(os.Stdout, "stdin closed")
		return 3
	case "slow":
		fmt.Fprintln(os.Stdout, "early")
		time.Sleep(2 * time.Second)
		fmt.Fprintln(os.Stdout, "late")
		return 0
	}
	return 99
}

func startHelper(t *testing.T, ctx context.Context, mode string, in Input, args ...string) *Process {
	t.Helper()
	t.Setenv(helperEnv, mode)
	p, err := Start(ctx, os.Args[0], args, in)
	require.NoError(t, err)
	return p
}

func drain(p *Process) []string {
	var out []string
	for line := range p.Lines() {
		out = append(out, line)
	}
	return out
}

func TestCombinedOutputPreservesOrder(t *testing.T) {
	p := startHelper(t, context.Background(), "echo", FromReader(nil), "one", "two", "three", "four")
	lines := drain(p)
	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, []string{"one", "two", "three", "four"}, lines)
	require.NoError(t, p.ReadErr())
}

func TestExitCodeAndTrailingPartialLine(t *testing.T) {
	p := startHelper(t, context.Background(), "exit", FromReader(nil), "7")
	lines := drain(p)
	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 7, code)
	require.Equal(t, []string{"no newline at end"}, lines)
}

func TestCRLFTerminatorsStripped(t *testing.T) {
	p := startHelper(t, context.Background(), "crlf", FromReader(nil))
	require.Equal(t, []string{"first", "second"}, drain(p))
	_, err := p.Wait()
	require.NoError(t, err)
}

func TestInvalidUTF8Replaced(t *testing.T) {
	p := startHelper(t, context.Background(), "invalid", FromReader(nil))
	lines := drain(p)
	_, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, []string{"ok�"}, lines)
}

func TestStdinFromReader(t *testing.T) {
	p := startHelper(t, context.Background(), "until-eof", FromReader(strings.NewReader("a\nb\n")))
	require.Nil(t, p.Stdin())
	lines := drain(p)
	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 3, code)
	require.Equal(t, []string{"waiting", "got a", "got b", "stdin closed"}, lines)
}

func TestCloseInputEndsChild(t *testing.T) {
	p := startHelper(t, context.Background(), "until-eof", Pipe())
	require.Equal(t, "waiting", <-p.Lines())

	_, err := fmt.Fprintln(p.Stdin(), "hello")
	require.NoError(t, err)
	require.Equal(t, "got hello", <-p.Lines())

	require.NoError(t, p.CloseInput())
	require.NoError(t, p.CloseInput())
	require.Equal(t, []string{"stdin closed"}, drain(p))
	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 3, code)
}

func TestContextCancelClosesInput(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := startHelper(t, ctx, "until-eof", Pipe())
	require.Equal(t, "waiting", <-p.Lines())

	cancel()
	require.Equal(t, []string{"stdin closed"}, drain(p))
	code, err := p.Wait()
	require.NoError(t, err)
	require.Equal(t, 3, code)
}

func TestLinesArriveBeforeExit(t *testing.T) {
	p := startHelper(t, context.Background(), "slow", FromReader(nil))
	select {
	case line := <-p.Lines():
		require.Equal(t, "early", line)
	case <-time.After(1500 * time.Millisecond):
		t.Fatal("first line was not delivered while the child was still running")
	}
	require.Equal(t, []string{"late"}, drain(p))
	_, err := p.Wait()
	require.NoError(t, err)
}

func TestStartMissingProgram(t *testing.T) {
	_, err := Start(context.Background(), "/nonexistent/docbuild-runtime", nil, Pipe())
	require.Error(t, err)
	require.Contains(t, err.Error(), "start /nonexistent/docbuild-runtime")
}
