package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfp "github.com/turtacn/KeyIP-Fingerprint/internal/application/fingerprint"
	"github.com/turtacn/KeyIP-Fingerprint/internal/config"
	"github.com/turtacn/KeyIP-Fingerprint/internal/infrastructure/chem/hashkernel"
	"github.com/turtacn/KeyIP-Fingerprint/internal/testutil"
	"github.com/turtacn/KeyIP-Fingerprint/pkg/client"
	ftypes "github.com/turtacn/KeyIP-Fingerprint/pkg/types/fingerprint"
)

// newTestCLIContext builds an in-process context with no server client.
func newTestCLIContext(t *testing.T) *CLIContext {
	t.Helper()
	logger := testutil.NewMockLogger()
	return &CLIContext{
		Config:       &config.Config{},
		Logger:       logger,
		Service:      appfp.NewService(hashkernel.New(hashkernel.Config{}, logger), nil, logger),
		OutputFormat: "json",
		Timeout:      10 * time.Second,
	}
}

// runCLI executes the root command with cliCtx injected and returns stdout.
func runCLI(t *testing.T, cliCtx *CLIContext, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(WithCLIContext(context.Background(), cliCtx))
	return out.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "fpctl", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.Contains(t, cmd.Version, Version)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"families", "spec", "validate", "compat", "calc", "similarity", "fields", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	for _, name := range []string{"config", "log-level", "output", "verbose", "timeout", "server"} {
		assert.NotNil(t, pf.Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "table", pf.Lookup("output").DefValue)
	assert.Equal(t, "o", pf.Lookup("output").Shorthand)
	assert.Equal(t, "30s", pf.Lookup("timeout").DefValue)
}

func TestGetCLIContext_Missing(t *testing.T) {
	cmd := &cobra.Command{}
	_, err := GetCLIContext(cmd)
	assert.Error(t, err)

	cmd.SetContext(context.Background())
	_, err = GetCLIContext(cmd)
	assert.Error(t, err)
}

func TestPersistentPreRun_InjectedContextKeepsDependencies(t *testing.T) {
	cliCtx := newTestCLIContext(t)
	cliCtx.OutputFormat = "table"

	out, err := runCLI(t, cliCtx, "", "-o", "json", "families")
	require.NoError(t, err)
	assert.Equal(t, "json", cliCtx.OutputFormat)

	var families []ftypes.FamilyInfo
	require.NoError(t, json.Unmarshal([]byte(out), &families))
	assert.Len(t, families, 9)
}

func TestPersistentPreRun_FromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fpctl.yaml")
	yaml := `
server:
  port: 9191
fingerprint:
  default_type: MACCS
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "-o", "json", "calc", "CCO"})
	require.NoError(t, root.Execute())

	var resp ftypes.CalculateResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "MACCS", resp.Settings.Type)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 166, resp.Results[0].NumBits)
}

func TestPersistentPreRun_Errors(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"-o", "xml", "families"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	root = NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "families"})
	err = root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config initialization failed")

	root = NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--log-level", "loud", "families"})
	err = root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger initialization failed")
}

func TestInitClient(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Port: 9090}}

	c, err := initClient(cfg, &RootOptions{Timeout: time.Second})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = initClient(cfg, &RootOptions{ServerAddr: "ftp://nope"})
	assert.ErrorIs(t, err, client.ErrInvalidConfig)
}

func TestInitLogger(t *testing.T) {
	l, err := initLogger(&RootOptions{LogLevel: "error", Verbose: true})
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = initLogger(&RootOptions{LogLevel: "chatty"})
	assert.Error(t, err)
}

func TestPrintResult_Formats(t *testing.T) {
	info := BuildInfo{Version: "1.2.3", Commit: "abc", BuildDate: "today"}
	cliCtx := newTestCLIContext(t)

	for _, tc := range []struct {
		format string
		want   []string
	}{
		{"json", []string{`"version": "1.2.3"`, `"commit": "abc"`}},
		{"text", []string{"1.2.3\tabc\ttoday"}},
		{"table", []string{"Version", "1.2.3", "abc"}},
	} {
		t.Run(tc.format, func(t *testing.T) {
			cliCtx.OutputFormat = tc.format
			cmd := &cobra.Command{}
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetContext(WithCLIContext(context.Background(), cliCtx))

			require.NoError(t, PrintResult(cmd, info))
			for _, w := range tc.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestPrintResult_NoContextFallsBackToJSON(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, PrintResult(cmd, map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, out.String())
}

func TestPrintText_PlainValues(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printText(&out, "hello"))
	require.NoError(t, printText(&out, 42))
	assert.Equal(t, "hello\n42\n", out.String())
}

func TestRenderTable(t *testing.T) {
	var out bytes.Buffer
	RenderTable(&out, []string{"Field", "Value"}, [][]string{{"numBits", "2048"}, {"radius", "2"}})
	s := out.String()
	assert.Contains(t, s, "Field")
	assert.Contains(t, s, "numBits")
	assert.Contains(t, s, "2048")

	out.Reset()
	RenderTable(&out, nil, [][]string{{"x"}})
	assert.Empty(t, out.String())
}

func TestPrintErrorAndSuccess(t *testing.T) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	PrintError(cmd, nil)
	assert.Empty(t, errOut.String())
	PrintError(cmd, assert.AnError)
	assert.Contains(t, errOut.String(), "Error: ")

	PrintSuccess(cmd, "done")
	assert.Equal(t, "OK: done\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, newTestCLIContext(t), "", "version")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
}

//Personal.AI order the ending
