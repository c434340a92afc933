package repro_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.skade.ch/crashmin/internal/adapters/logger"
	"go.skade.ch/crashmin/internal/adapters/repro"
	"go.skade.ch/crashmin/internal/core/domain"
)

var loaderTools = domain.ToolPaths{Clang: "/opt/llvm/bin/clang", Not: "/opt/llvm/bin/not"}

func newLoader() *repro.Loader {
	return repro.NewLoader(logger.New())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_CrashScript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "crash-abc123.c", "int main(void) { return 0; }\n")
	script := writeFile(t, dir, "crash-abc123.sh", `# Crash reproducer for clang version 13.0.0
# Driver args: "-O2" "crash.c"
# Original command:  "/usr/lib/llvm/bin/clang" "-cc1" ...
 "/usr/lib/llvm/bin/clang" "-cc1" "-triple" "cheri-unknown-freebsd" "-O2" "crash-abc123.c"
`)

	rep, err := newLoader().Load(script, loaderTools)
	require.NoError(t, err)
	assert.Equal(t, domain.KindCrashScript, rep.Kind)
	assert.Equal(t, filepath.Join(dir, "crash-abc123.c"), rep.Input)
	require.Len(t, rep.Directives, 1)
	assert.Equal(t,
		[]string{"/opt/llvm/bin/clang", "-cc1", "-triple", "cheri-unknown-freebsd", "-O2", "%s"},
		rep.Directives[0].Command,
	)
}

func TestLoad_CrashScript_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "input.c", "int x;\n")

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "only comments",
			content: "# Crash reproducer\n# nothing else\n",
		},
		{
			name:    "wrong executable",
			content: `"/usr/bin/rustc" "--edition" "input.c"` + "\n",
		},
		{
			name:    "command line with a bare executable",
			content: "\"/usr/bin/clang\" \"-cc1\" \"input.c\"\n\"/usr/bin/sync\"\n",
		},
		{
			name:    "missing source file",
			content: `"/usr/bin/clang" "-cc1" "does-not-exist.c"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeFile(t, t.TempDir(), "crash.sh", tt.content)
			if tt.name == "missing source file" {
				script = writeFile(t, dir, "crash.sh", tt.content)
			}

			_, err := newLoader().Load(script, loaderTools)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedReproducer))
		})
	}
}

func TestLoad_RunTest(t *testing.T) {
	dir := t.TempDir()
	test := writeFile(t, dir, "regress.c", `// A regression test.
// RUN: %cheri_purecap_cc1 -O2 -emit-obj %s -o /dev/null
// RUN: %clang_cc1 -O0 %s -emit-llvm -o - | FileCheck %s
int main(void) { return 0; }
`)

	rep, err := newLoader().Load(test, loaderTools)
	require.NoError(t, err)
	assert.Equal(t, domain.KindRunTest, rep.Kind)
	assert.Equal(t, test, rep.Input)
	require.Len(t, rep.Directives, 2)

	assert.Equal(t,
		[]string{
			"/opt/llvm/bin/clang", "-cc1", "-triple", "cheri-unknown-freebsd",
			"-target-abi", "purecap", "-O2", "-emit-obj", "%s", "-o", "/dev/null",
		},
		rep.Directives[0].Command,
	)
	// The FileCheck tail is dropped from the normalized command.
	assert.Equal(t,
		[]string{"/opt/llvm/bin/clang", "-cc1", "-O0", "%s", "-emit-llvm", "-o", "-"},
		rep.Directives[1].Command,
	)
}

func TestLoad_RunTest_LineContinuation(t *testing.T) {
	dir := t.TempDir()
	test := writeFile(t, dir, "cont.ll", `; RUN: %llc -mcpu=cheri128 \
; RUN:   %s -o /dev/null
define i32 @f() {
  ret i32 0
}
`)

	rep, err := newLoader().Load(test, loaderTools)
	require.NoError(t, err)
	require.Len(t, rep.Directives, 1)
	assert.Equal(t, []string{"llc", "-mcpu=cheri128", "%s", "-o", "/dev/null"}, rep.Directives[0].Command)
}

func TestLoad_RunTest_NoDirectives(t *testing.T) {
	test := writeFile(t, t.TempDir(), "plain.c", "int main(void) { return 0; }\n")

	_, err := newLoader().Load(test, loaderTools)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoDirectivesFound))
}

func TestLoad_RunTest_MissingPlaceholder(t *testing.T) {
	test := writeFile(t, t.TempDir(), "bad.c", "// RUN: %clang_cc1 -O2 fixed-path.c\nint x;\n")

	_, err := newLoader().Load(test, loaderTools)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoInputPlaceholder))
}

func TestLoad_OrderPreserved(t *testing.T) {
	test := writeFile(t, t.TempDir(), "ordered.c", `// RUN: %clang_cc1 -O0 %s
// RUN: %clang_cc1 -O1 %s
// RUN: %clang_cc1 -O2 %s
int x;
`)

	rep, err := newLoader().Load(test, loaderTools)
	require.NoError(t, err)
	require.Len(t, rep.Directives, 3)
	for i, want := range []string{"-O0", "-O1", "-O2"} {
		assert.Contains(t, rep.Directives[i].Command, want)
	}
}
