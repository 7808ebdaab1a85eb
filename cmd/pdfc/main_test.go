package main

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, files map[string]string, args ...string) (string, error) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, text := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(text), 0o644))
	}
	var out, errOut bytes.Buffer
	cmd := newRootCmd(fsys)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLex(t *testing.T) {
	out, err := run(t, map[string]string{"a.pdf": "[/A 1]"}, "lex", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, `LBrack@0..1 "["
Name@1..3 "/A"
Whitespace@3..4 " "
IntNumber@4..5 "1"
RBrack@5..6 "]"
`, out)
}

func TestLexReportsErrors(t *testing.T) {
	out, err := run(t, map[string]string{"a.pdf": "1+2 foo"}, "lex", "--trivia=false", "a.pdf")
	assert.ErrorIs(t, err, errFound)
	assert.Equal(t, `IntNumber@0..3 "1+2"
  error: malformed number
Error@4..7 "foo"
  error: unknown keyword `+"`foo`"+`
`, out)
}

func TestParse(t *testing.T) {
	files := map[string]string{"a.pdf": "7 0 R"}

	out, err := run(t, files, "parse", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, `PdfDocument@0..5
  IndirectReferenceExpr@0..5
    Literal@0..1
      IntNumber@0..1 "7"
    Whitespace@1..2 " "
    Literal@2..3
      IntNumber@2..3 "0"
    Whitespace@3..4 " "
    RKw@4..5 "R"
`, out)

	out, err = run(t, files, "parse", "-f", "json", "--entry", "expr", "a.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "IndirectReferenceExpr"`)
	assert.Contains(t, out, `"errors": []`)
}

func TestParseFlagsErrors(t *testing.T) {
	files := map[string]string{"a.pdf": "null"}

	_, err := run(t, files, "parse", "-f", "xml", "a.pdf")
	assert.EqualError(t, err, "unknown format: xml")

	_, err = run(t, files, "parse", "--entry", "object", "a.pdf")
	assert.EqualError(t, err, "unknown entry point: object")

	_, err = run(t, files, "parse", "missing.pdf")
	assert.ErrorContains(t, err, "read missing.pdf")

	_, err = run(t, files, "--edition", "3.0", "parse", "a.pdf")
	assert.ErrorContains(t, err, "invalid config")
}

func TestCheck(t *testing.T) {
	files := map[string]string{
		"docs/good.pdf":      "1 0 obj null endobj",
		"docs/bad.pdf":       "1 0 obj\n<< /A >>\nendobj",
		"docs/sub/old.pdf":   "/A#20B",
		"docs/.hidden/x.pdf": "[",
	}

	out, err := run(t, files, "check", "docs/good.pdf")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, files, "check", "docs")
	assert.ErrorIs(t, err, errFound)
	assert.Equal(t, "docs/bad.pdf:2:4: dictionary is missing a value for the last key\n", out)

	out, err = run(t, files, "--edition", "1.1", "check", "docs")
	assert.ErrorIs(t, err, errFound)
	assert.Equal(t, "docs/bad.pdf:2:4: dictionary is missing a value for the last key\n"+
		"docs/sub/old.pdf:1:1: escapes in names require PDF 1.2\n", out)
}

func TestConfigFileSetsEdition(t *testing.T) {
	files := map[string]string{
		".pdfc.yaml": "edition: \"1.1\"\n",
		"a.pdf":      "/A#20B",
	}
	out, err := run(t, files, "check", "a.pdf")
	assert.ErrorIs(t, err, errFound)
	assert.Equal(t, "a.pdf:1:1: escapes in names require PDF 1.2\n", out)

	_, err = run(t, files, "--edition", "1.7", "check", "a.pdf")
	assert.NoError(t, err, "flags override the config file")
}

func TestGrammar(t *testing.T) {
	out, err := run(t, nil, "grammar")
	require.NoError(t, err)
	assert.Contains(t, out, "PdfDocument = { PdfItem } .")

	out, err = run(t, nil, "grammar", "--verify")
	require.NoError(t, err)
	assert.Equal(t, "grammar ok (start: PdfDocument)\n", out)
}
