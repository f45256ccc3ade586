package invocation

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	ggit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docbuild/internal/git"
)

type fakeHost struct {
	env  map[string]string
	wd   string
	home string
	goos string
}

func (h fakeHost) Getenv(key string) string { return h.env[key] }
func (h fakeHost) Getwd() (string, error)   { return h.wd, nil }
func (h fakeHost) HomeDir() (string, error) { return h.home, nil }
func (h fakeHost) GOOS() string {
	if h.goos == "" {
		return "linux"
	}
	return h.goos
}
func (h fakeHost) RepoRoot(path string) (string, error) { return git.RepoRoot(path) }

// tempDir returns a symlink-free temporary directory.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func newHost(t *testing.T) fakeHost {
	t.Helper()
	return fakeHost{env: map[string]string{}, wd: tempDir(t), home: tempDir(t)}
}

func mkdir(t *testing.T, elem ...string) string {
	t.Helper()
	p := filepath.Join(elem...)
	require.NoError(t, os.MkdirAll(p, 0o750))
	return p
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestDocAndOutScenario(t *testing.T) {
	host := newHost(t)
	repo := tempDir(t)
	_, err := ggit.PlainInit(repo, false)
	require.NoError(t, err)
	index := filepath.Join(mkdir(t, repo, "docs"), "index.asciidoc")
	require.NoError(t, os.WriteFile(index, []byte("= Doc\n"), 0o600))
	outParent := tempDir(t)

	plan, err := Build([]string{"--doc", index, "--out", filepath.Join(outParent, "built")}, host, quietLogger())
	require.NoError(t, err)

	doc, ok := plan.MountAt(DocPath)
	require.True(t, ok)
	require.Equal(t, Mount{HostPath: repo, ContainerPath: "/doc", Mode: ModeReadOnly}, doc)

	out, ok := plan.MountAt(OutPath)
	require.True(t, ok)
	require.Equal(t, Mount{HostPath: outParent, ContainerPath: "/out", Mode: ModeDelegated}, out)

	require.Equal(t, []string{"--doc", "/doc/docs/index.asciidoc", "--out", "/out/built"}, plan.ToolArgs)
	require.Equal(t, []string{
		"-v", repo + ":/doc:ro",
		"-v", outParent + ":/out:delegated",
	}, plan.RuntimeArgs)
	require.Equal(t, 0, plan.ExpectedExitCode)
	require.False(t, plan.OpenBrowserOnReady)
}

func TestEqualsSyntax(t *testing.T) {
	host := newHost(t)
	ref := mkdir(t, host.wd, "ref")

	plan, err := Build([]string{"--reference=ref"}, host, quietLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"--reference", "/reference", "--out", "/out/html_docs"}, plan.ToolArgs)
	m, ok := plan.MountAt(ReferencePath)
	require.True(t, ok)
	require.Equal(t, ref, m.HostPath)
}

func TestDefaultOutAppendedLastOnce(t *testing.T) {
	host := newHost(t)

	plan, err := Build([]string{"--chunk", "1", "--open", "--toc"}, host, quietLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"--chunk", "1", "--open", "--toc", "--out", "/out/html_docs"}, plan.ToolArgs)

	m, ok := plan.MountAt(OutPath)
	require.True(t, ok)
	require.Equal(t, host.wd, m.HostPath)
	require.Equal(t, ModeDelegated, m.Mode)

	count := 0
	for _, a := range plan.ToolArgs {
		if a == "--out" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestExplicitOutSuppressesDefaultRegardlessOfOrder(t *testing.T) {
	host := newHost(t)
	out := filepath.Join(host.wd, "site")

	plan, err := Build([]string{"--open", "--out", out, "--chunk", "1"}, host, quietLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"--open", "--out", "/out/site", "--chunk", "1"}, plan.ToolArgs)
}

func TestOutResolvesExistingSymlink(t *testing.T) {
	host := newHost(t)
	target := mkdir(t, tempDir(t), "real-out")
	link := filepath.Join(host.wd, "link")
	require.NoError(t, os.Symlink(target, link))

	plan, err := Build([]string{"--out", link}, host, quietLogger())
	require.NoError(t, err)
	m, _ := plan.MountAt(OutPath)
	require.Equal(t, filepath.Dir(target), m.HostPath)
	require.Equal(t, []string{"--out", "/out/real-out"}, plan.ToolArgs)
}

func TestOutMissingParent(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--out", filepath.Join(host.wd, "no", "such")}, host, quietLogger())
	require.Nil(t, plan)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestResourceOrdinals(t *testing.T) {
	host := newHost(t)
	a := mkdir(t, host.wd, "a")
	b := mkdir(t, host.wd, "b")
	c := mkdir(t, host.wd, "c")

	plan, err := Build([]string{"--resource", a, "--toc", "--resource=" + b, "--open", "--resource", c}, host, quietLogger())
	require.NoError(t, err)
	require.Equal(t, []string{
		"--resource", "/resource_0",
		"--toc",
		"--resource", "/resource_1",
		"--open",
		"--resource", "/resource_2",
		"--out", "/out/html_docs",
	}, plan.ToolArgs)

	for i, dir := range []string{a, b, c} {
		m, ok := plan.MountAt("/resource_" + string(rune('0'+i)))
		require.True(t, ok)
		require.Equal(t, dir, m.HostPath)
		require.Equal(t, ModeReadOnly, m.Mode)
	}
}

func TestResourceMustBeDirectory(t *testing.T) {
	host := newHost(t)
	file := filepath.Join(host.wd, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	plan, err := Build([]string{"--resource", file}, host, quietLogger())
	require.Nil(t, plan)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	require.Contains(t, err.Error(), "not a directory")
}

func TestMissingReferenceIsAtomic(t *testing.T) {
	host := newHost(t)
	a := mkdir(t, host.wd, "a")

	plan, err := Build([]string{"--resource", a, "--open", "--reference", "/missing/reference"}, host, quietLogger())
	require.Nil(t, plan)
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	require.True(t, errors.IsArgumentError(err))
}

func TestMultipleEqualsFailsBeforeAnyMount(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--reference", "/missing", "--a=b=c"}, host, quietLogger())
	require.Nil(t, plan)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestMissingValue(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--open", "--doc"}, host, quietLogger())
	require.Nil(t, plan)
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	flag, _ := classified.Context().GetString(errors.ContextFlag)
	require.Equal(t, "--doc", flag)
}

func TestUnknownFlagsAreAtomic(t *testing.T) {
	host := newHost(t)
	// --alternatives conventionally takes a value; it must not swallow --open.
	plan, err := Build([]string{"--alternatives", "--open"}, host, quietLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"--alternatives", "--open", "--out", "/out/html_docs"}, plan.ToolArgs)
	require.True(t, plan.OpenBrowserOnReady)
}

func TestOpenPublishesPreviewPort(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--open"}, host, quietLogger())
	require.NoError(t, err)
	require.True(t, plan.OpenBrowserOnReady)
	require.Equal(t, []string{"--publish", "8000:8000/tcp"}, plan.RuntimeArgs[:2])
	require.Contains(t, plan.RuntimeArgs, "/run/nginx")
	require.Contains(t, plan.RuntimeArgs, "/var/log/nginx")
}

func TestHelpExpectsExitOne(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--help"}, host, quietLogger())
	require.NoError(t, err)
	require.Equal(t, 1, plan.ExpectedExitCode)
	require.Equal(t, []string{"--help", "--out", "/out/html_docs"}, plan.ToolArgs)
}

func TestPushMountsGitConfig(t *testing.T) {
	host := newHost(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	plan, err := Build([]string{"--push"}, host, logger)
	require.NoError(t, err)
	_, ok := plan.MountAt("/root/.gitconfig")
	require.False(t, ok)
	require.Contains(t, logs.String(), "--push without ~/.gitconfig")

	cfg := filepath.Join(host.home, ".gitconfig")
	require.NoError(t, os.WriteFile(cfg, []byte("[user]\n\tname = Writer\n"), 0o600))
	logs.Reset()
	plan, err = Build([]string{"--push"}, host, logger)
	require.NoError(t, err)
	m, ok := plan.MountAt("/root/.gitconfig")
	require.True(t, ok)
	require.Equal(t, Mount{HostPath: cfg, ContainerPath: "/root/.gitconfig", Mode: ModeReadOnly}, m)
	require.Contains(t, logs.String(), "no complete user identity")
	require.Equal(t, []string{"--push", "--out", "/out/html_docs"}, plan.ToolArgs)
}

func TestRelyOnSSHAuth(t *testing.T) {
	host := newHost(t)
	sockDir := mkdir(t, tempDir(t), "agent")
	sock := filepath.Join(sockDir, "agent.sock")
	host.env["SSH_AUTH_SOCK"] = sock
	host.goos = "darwin"
	kh := filepath.Join(mkdir(t, host.home, ".ssh"), "known_hosts")
	require.NoError(t, os.WriteFile(kh, []byte("github.com ssh-ed25519 AAAA\n"), 0o600))

	var logs bytes.Buffer
	plan, err := Build([]string{"--rely_on_ssh_auth"}, host, slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)

	m, ok := plan.MountAt(sockDir)
	require.True(t, ok)
	require.Equal(t, ModeReadWrite, m.Mode)
	require.Contains(t, plan.RuntimeArgs, "SSH_AUTH_SOCK="+sock)
	_, ok = plan.MountAt("/root/.ssh/known_hosts")
	require.True(t, ok)
	require.Contains(t, logs.String(), "only known to work on linux")
}

func TestRelyOnSSHAuthWithoutAgent(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--rely_on_ssh_auth"}, host, quietLogger())
	require.NoError(t, err)
	for _, a := range plan.RuntimeArgs {
		require.NotContains(t, a, "SSH_AUTH_SOCK")
	}
}

func TestDocOutsideRepository(t *testing.T) {
	host := newHost(t)
	file := filepath.Join(host.wd, "index.asciidoc")
	require.NoError(t, os.WriteFile(file, []byte("= Doc\n"), 0o600))

	plan, err := Build([]string{"--doc", file}, host, quietLogger())
	require.Nil(t, plan)
	require.True(t, errors.HasCategory(err, errors.CategoryGit))
}

func TestDocMissing(t *testing.T) {
	host := newHost(t)
	plan, err := Build([]string{"--doc", "nope.asciidoc"}, host, quietLogger())
	require.Nil(t, plan)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestConflictingDocRepositories(t *testing.T) {
	host := newHost(t)
	var files []string
	for i := 0; i < 2; i++ {
		repo := tempDir(t)
		_, err := ggit.PlainInit(repo, false)
		require.NoError(t, err)
		f := filepath.Join(repo, "index.asciidoc")
		require.NoError(t, os.WriteFile(f, []byte("= Doc\n"), 0o600))
		files = append(files, f)
	}

	plan, err := Build([]string{"--doc", files[0], "--doc", files[1]}, host, quietLogger())
	require.Nil(t, plan)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestSameRepositoryMountedOnce(t *testing.T) {
	host := newHost(t)
	repo := tempDir(t)
	_, err := ggit.PlainInit(repo, false)
	require.NoError(t, err)
	a := filepath.Join(repo, "a.asciidoc")
	b := filepath.Join(repo, "b.asciidoc")
	require.NoError(t, os.WriteFile(a, nil, 0o600))
	require.NoError(t, os.WriteFile(b, nil, 0o600))

	plan, err := Build([]string{"--doc", a, "--doc", b}, host, quietLogger())
	require.NoError(t, err)
	require.Len(t, plan.Mounts, 2) // /doc and /out
	require.Equal(t, []string{"--doc", "/doc/a.asciidoc", "--doc", "/doc/b.asciidoc", "--out", "/out/html_docs"}, plan.ToolArgs)
}

func TestRecognizedFlags(t *testing.T) {
	require.ElementsMatch(t, []string{
		"--doc", "--open", "--out", "--push", "--reference", "--rely_on_ssh_auth", "--resource", "--help",
	}, RecognizedFlags())
}
