package probe

import (
	"strings"

	"github.com/sysprobe/sysprobe/internal/execx"
)

// fakeRunner scripts executor responses per command line, file path and glob
// pattern. Anything not scripted behaves like a missing tool or file.
type fakeRunner struct {
	commands   map[string]execx.Result
	privileged map[string]execx.Result
	files      map[string]string
	globs      map[string][]string
	tools      map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		commands:   make(map[string]execx.Result),
		privileged: make(map[string]execx.Result),
		files:      make(map[string]string),
		globs:      make(map[string][]string),
		tools:      make(map[string]bool),
	}
}

func cmdKey(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func okResult(stdout string) execx.Result {
	return execx.Result{Stdout: stdout, Outcome: execx.OK}
}

func notFoundResult() execx.Result {
	return execx.Result{Stderr: "executable file not found", ExitCode: -1, Outcome: execx.NotFound}
}

func (f *fakeRunner) Run(name string, args ...string) execx.Result {
	if res, ok := f.commands[cmdKey(name, args)]; ok {
		return res
	}
	return notFoundResult()
}

func (f *fakeRunner) RunPrivileged(name string, args ...string) execx.Result {
	if res, ok := f.privileged[cmdKey(name, args)]; ok {
		return res
	}
	return notFoundResult()
}

func (f *fakeRunner) ReadFile(path string) (string, bool) {
	content, ok := f.files[path]
	return content, ok
}

func (f *fakeRunner) Glob(pattern string) []string {
	return f.globs[pattern]
}

func (f *fakeRunner) LookPath(name string) bool {
	return f.tools[name]
}

func testContext(exec execx.Runner) *Context {
	return &Context{Exec: exec}
}
