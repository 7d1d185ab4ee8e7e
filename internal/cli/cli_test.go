package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsarma/codepad/internal/cli"
	"github.com/gsarma/codepad/internal/code"
	"github.com/gsarma/codepad/internal/config"
)

type scriptedEngine struct {
	status code.JobStatus
	got    code.ExecutionRequest
}

func (e *scriptedEngine) Submit(_ context.Context, req code.ExecutionRequest) (code.JobHandle, error) {
	e.got = req
	return "tok", nil
}

func (e *scriptedEngine) Status(_ context.Context, _ code.JobHandle) (*code.JobStatus, error) {
	st := e.status
	return &st, nil
}

func testConfig() (*config.Config, error) {
	cfg := config.Default()
	cfg.Judge0 = code.Judge0Config{URL: "http://judge0.test", APIKey: "k", APIHost: "h"}
	cfg.Poll = code.PollConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	return cfg, nil
}

func execute(t *testing.T, e code.Engine, load func() (*config.Config, error), args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd(load, func(code.Judge0Config) (code.Engine, error) { return e, nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLanguages(t *testing.T) {
	out, err := execute(t, nil, nil, "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "python")
	assert.Contains(t, out, "71")
	assert.Contains(t, out, "cpp")
}

func TestRun_Success(t *testing.T) {
	e := &scriptedEngine{status: code.JobStatus{StatusID: 3, Stdout: code.Encode("hi\n")}}
	src := writeFile(t, "main.py", "print('hi')")
	in := writeFile(t, "in.txt", "42")

	out, err := execute(t, e, testConfig, "run", "-l", "python", "-f", src, "--stdin-file", in)
	require.NoError(t, err)
	assert.Equal(t, "hi\n\n", out)
	assert.Equal(t, 71, e.got.LanguageID)
	assert.Equal(t, code.Encode("print('hi')"), e.got.SourceCode)
	assert.Equal(t, code.Encode("42"), e.got.Stdin)
}

func TestRun_CompileErrorIsUnsuccessful(t *testing.T) {
	e := &scriptedEngine{status: code.JobStatus{StatusID: 6, CompileOutput: code.Encode("main.cpp:1: error")}}
	src := writeFile(t, "main.cpp", "int main(")

	out, err := execute(t, e, testConfig, "run", "--language", "cpp", "--file", src)
	assert.ErrorIs(t, err, cli.ErrUnsuccessful)
	assert.Contains(t, out, "main.cpp:1: error")
}

func TestRun_UnsupportedLanguage(t *testing.T) {
	src := writeFile(t, "main.rb", "puts 1")
	_, err := execute(t, &scriptedEngine{}, testConfig, "run", "-l", "ruby", "-f", src)
	assert.ErrorIs(t, err, code.ErrUnsupportedLanguage)
}

func TestRun_MissingEngineConfig(t *testing.T) {
	src := writeFile(t, "main.py", "print(1)")
	load := func() (*config.Config, error) { return config.Default(), nil }
	_, err := execute(t, &scriptedEngine{}, load, "run", "-l", "python", "-f", src)
	assert.ErrorIs(t, err, config.ErrConfigurationMissing)
}

func TestRun_RequiresFlags(t *testing.T) {
	_, err := execute(t, &scriptedEngine{}, testConfig, "run", "-l", "python")
	assert.Error(t, err)
}
