package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(in string) (*env, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	e := &env{
		cfg: defaultConfig(),
		log: zerolog.New(&logs),
		in:  strings.NewReader(in),
		out: &out,
	}
	return e, &out, &logs
}

func TestEvalCommand(t *testing.T) {
	cases := []struct {
		name string
		cmd  evalCmd
		in   string
		out  string
	}{
		{"args", evalCmd{Exprs: []string{"2 + 3 * 4", "5 / 0"}}, "", "14\n5\n"},
		{"stdin", evalCmd{}, "1 + 1\n\n   \n2 ^ 10\n", "2\n1024\n"},
		{"stdin-dash", evalCmd{In: "-"}, "( 1 + 2 ) * 3\n", "9\n"},
		{"echo", evalCmd{Exprs: []string{"1 + 2"}, Echo: true}, "", "[\"1\" \"+\" \"2\"] : 3\n"},
		{"echo-malformed", evalCmd{Exprs: []string{"1 + two"}, Echo: true}, "", "[\"1\" \"+\" \"two\"] : 1\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, out, _ := testEnv(c.in)
			require.NoError(t, c.cmd.Run(e))
			assert.Equal(t, c.out, out.String())
		})
	}
}

func TestEvalCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("6 / 4\n2 - 5\n"), 0o644))
	e, out, _ := testEnv("")
	e.cfg.Format = "%.2f"
	cmd := evalCmd{Exprs: []string{"1"}, In: path}
	require.NoError(t, cmd.Run(e))
	assert.Equal(t, "1.00\n1.50\n-3.00\n", out.String())
}

func TestEvalCommandStrict(t *testing.T) {
	e, out, _ := testEnv("")
	e.cfg.Strict = true
	cmd := evalCmd{Exprs: []string{"1 + x", "2"}}
	err := cmd.Run(e)
	assert.ErrorContains(t, err, "1 of 2 expressions rejected")
	assert.Equal(t, "5: invalid token \"x\"\n2\n", out.String())
}

func TestEvalCommandLogsDiagnostics(t *testing.T) {
	e, out, logs := testEnv("")
	cmd := evalCmd{Exprs: []string{"( 1 + 2"}}
	require.NoError(t, cmd.Run(e))
	assert.Equal(t, "3\n", out.String())
	assert.Contains(t, logs.String(), `"kind":"UnbalancedParen"`)
}

func TestEvalCommandEchoLogsMalformed(t *testing.T) {
	e, out, logs := testEnv("")
	cmd := evalCmd{Exprs: []string{"1 + two"}, Echo: true}
	require.NoError(t, cmd.Run(e))
	assert.True(t, strings.HasPrefix(out.String(), `["1" "+" "two"] : `), "output %q", out)
	assert.Contains(t, logs.String(), `"message":"malformed token"`)
	assert.Contains(t, logs.String(), `invalid token \"two\"`)
}

func TestKeysCommand(t *testing.T) {
	cases := []struct {
		name string
		keys string
		out  string
	}{
		{"equals", "1 + 2 =", "3\n"},
		{"pending", "1 + 2", "1 + 2\n"},
		{"continue", "1 + 2 = * 3", "3\n3 * 3\n"},
		{"twice", "1 + 2 = * 3 =", "3\n9\n"},
		{"rejected", ") 4 2 =", "42\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, out, _ := testEnv("")
			cmd := keysCmd{Keys: strings.Fields(c.keys)}
			require.NoError(t, cmd.Run(e))
			assert.Equal(t, c.out, out.String())
		})
	}
}

func TestKeysCommandLogsRejected(t *testing.T) {
	e, _, logs := testEnv("")
	cmd := keysCmd{Keys: []string{"+", "="}}
	require.NoError(t, cmd.Run(e))
	assert.Equal(t, 2, strings.Count(logs.String(), "key rejected"))
}

func TestParseCommandLine(t *testing.T) {
	cases := []struct {
		name string
		args []string
		out  string
	}{
		{"default", []string{"2 * 21"}, "42\n"},
		{"eval", []string{"eval", "--echo", "1 - 1"}, "[\"1\" \"-\" \"1\"] : 0\n"},
		{"keys", []string{"keys", "7", "sqrt", "neg"}, "-2.6457513110645907\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var cl cli
			p, err := kong.New(&cl, kong.Name("infix"))
			require.NoError(t, err)
			kctx, err := p.Parse(c.args)
			require.NoError(t, err)
			e, out, _ := testEnv("")
			require.NoError(t, kctx.Run(e))
			assert.Equal(t, c.out, out.String())
		})
	}
}

func TestShutdownSignals(t *testing.T) {
	assert.Contains(t, shutdownSignals, os.Interrupt)
	assert.Contains(t, shutdownSignals, os.Signal(syscall.SIGTERM))
}
