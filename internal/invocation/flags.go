package invocation

import (
	"os"
	"path"
	"path/filepath"
	"strconv"

	"git.home.luguber.info/inful/docbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docbuild/internal/git"
	"git.home.luguber.info/inful/docbuild/internal/logfields"
)

// PreviewPort is published by --open and served by the inner tool.
const PreviewPort = 8000

// Mount targets for credentials forwarded into the container.
const (
	containerGitConfig  = "/root/.gitconfig"
	containerKnownHosts = "/root/.ssh/known_hosts"
	sshAuthSockEnv      = "SSH_AUTH_SOCK"
)

// previewTmpfs are the web server's writable directories; the image's root
// filesystem is read-only.
var previewTmpfs = []string{
	"/run/nginx",
	"/var/log/nginx",
	"/var/lib/nginx/body",
	"/var/lib/nginx/fastcgi",
	"/var/lib/nginx/proxy",
	"/var/lib/nginx/uwsgi",
	"/var/lib/nginx/scgi",
}

// flagHandler translates one recognized flag. arity is the number of value
// tokens consumed (0 or 1); apply receives the value and returns its rewritten
// form for the inner tool. The flag itself is always forwarded.
type flagHandler struct {
	arity int
	apply func(b *Builder, value string) (string, error)
}

var flagTable = map[string]flagHandler{
	"--doc":              {arity: 1, apply: (*Builder).doc},
	"--open":             {arity: 0, apply: (*Builder).open},
	"--out":              {arity: 1, apply: (*Builder).out},
	"--push":             {arity: 0, apply: (*Builder).push},
	"--reference":        {arity: 1, apply: (*Builder).reference},
	"--rely_on_ssh_auth": {arity: 0, apply: (*Builder).relyOnSSHAuth},
	"--resource":         {arity: 1, apply: (*Builder).resource},
	"--help":             {arity: 0, apply: (*Builder).help},
}

// RecognizedFlags lists the flags with translation rules.
func RecognizedFlags() []string {
	flags := make([]string, 0, len(flagTable))
	for f := range flagTable {
		flags = append(flags, f)
	}
	return flags
}

func (b *Builder) doc(value string) (string, error) {
	real, err := b.realPath("--doc", value)
	if err != nil {
		return "", err
	}
	root, err := b.host.RepoRoot(real)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, real)
	if err != nil {
		return "", errors.ValidationError(value+" is outside its repository").WithCause(err).Build()
	}
	if err := b.mount(root, DocPath, ModeReadOnly); err != nil {
		return "", err
	}
	if commit, err := git.HeadCommit(root); err == nil {
		b.logger.Debug("Documentation repository", logfields.Path(root), logfields.Commit(commit))
	}
	return path.Join(DocPath, filepath.ToSlash(rel)), nil
}

func (b *Builder) open(string) (string, error) {
	port := strconv.Itoa(PreviewPort)
	b.runtime = append(b.runtime, "--publish", port+":"+port+"/tcp")
	for _, dir := range previewTmpfs {
		b.runtime = append(b.runtime, "--tmpfs", dir)
	}
	b.openBrowser = true
	return "", nil
}

func (b *Builder) out(value string) (string, error) {
	abs, err := b.absolute(value)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// The output directory itself may not exist yet; its parent must.
		parent, perr := filepath.EvalSymlinks(filepath.Dir(abs))
		if perr != nil {
			return "", errors.NotFound("--out", filepath.Dir(abs)).WithCause(perr).Build()
		}
		real = filepath.Join(parent, filepath.Base(abs))
	}
	if err := b.mount(filepath.Dir(real), OutPath, ModeDelegated); err != nil {
		return "", err
	}
	b.sawOut = true
	return path.Join(OutPath, filepath.Base(real)), nil
}

func (b *Builder) push(string) (string, error) {
	cfg, ok := b.homeFile(".gitconfig")
	if !ok {
		b.logger.Warn("--push without ~/.gitconfig; commits inside the container have no identity")
		return "", nil
	}
	if err := b.mount(cfg, containerGitConfig, ModeReadOnly); err != nil {
		return "", err
	}
	if id, err := git.ReadIdentity(cfg); err != nil {
		b.logger.Warn("Unable to read git config", logfields.Path(cfg), logfields.Error(err))
	} else if !id.Complete() {
		b.logger.Warn("Git config has no complete user identity", logfields.Path(cfg))
	}
	return "", nil
}

func (b *Builder) reference(value string) (string, error) {
	real, err := b.realPath("--reference", value)
	if err != nil {
		return "", err
	}
	if err := b.mount(real, ReferencePath, ModeReadOnly); err != nil {
		return "", err
	}
	return ReferencePath, nil
}

func (b *Builder) relyOnSSHAuth(string) (string, error) {
	if sock := b.host.Getenv(sshAuthSockEnv); sock != "" {
		dir := filepath.Dir(sock)
		if err := b.mount(dir, dir, ModeReadWrite); err != nil {
			return "", err
		}
		b.runtime = append(b.runtime, "-e", sshAuthSockEnv+"="+sock)
		if b.host.GOOS() != "linux" {
			b.logger.Warn("Forwarding the ssh agent socket is only known to work on linux", "os", b.host.GOOS())
		}
	} else {
		b.logger.Warn("--rely_on_ssh_auth without " + sshAuthSockEnv + "; the ssh agent is not forwarded")
	}
	if kh, ok := b.homeFile(".ssh", "known_hosts"); ok {
		if err := b.mount(kh, containerKnownHosts, ModeReadOnly); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (b *Builder) resource(value string) (string, error) {
	real, err := b.realPath("--resource", value)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(real)
	if err != nil {
		return "", errors.NotFound("--resource", value).WithCause(err).Build()
	}
	if !info.IsDir() {
		return "", errors.NotADirectory("--resource", value).Build()
	}
	target := ResourcePrefix + strconv.Itoa(b.resources)
	if err := b.mount(real, target, ModeReadOnly); err != nil {
		return "", err
	}
	b.resources++
	return target, nil
}

// help expects the inner tool's usage path, which exits 1.
func (b *Builder) help(string) (string, error) {
	b.expected = 1
	return "", nil
}
