package io

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/papg/pkg/arena"
)

const sample = `parity 3;
0 2 0 1,2 "a";
1 1 1 0;

3 3 1 0,3;
2 0 0 2;
`

func TestReadPGSolver(t *testing.T) {
	a, err := ReadPGSolver(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 4, a.Size())
	assert.Equal(t, 6, a.EdgeCount())
	assert.Equal(t, 3, a.MaxPriority())

	v := a.Vertex(0)
	assert.Equal(t, arena.Even, v.Owner)
	assert.Equal(t, 2, v.Priority)
	assert.Equal(t, []int{1, 2}, v.Outgoing)
	assert.Equal(t, "a", v.Label)

	assert.Equal(t, arena.Odd, a.Vertex(3).Owner)
	assert.Equal(t, []int{0, 3}, a.Vertex(3).Outgoing)
	assert.Equal(t, []int{1, 3}, a.Vertex(0).Incoming)
}

func TestReadPGSolver_NoHeader(t *testing.T) {
	a, err := ReadPGSolver(strings.NewReader("start 0;\n1 1 1 0;\n0 0 0 1;\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Size())
}

func TestReadPGSolver_Labels(t *testing.T) {
	a, err := ReadPGSolver(strings.NewReader(`0 0 0 0 "say \"hi\"";` + "\n" + `1 0 1 1 "two words";`))
	require.NoError(t, err)
	assert.Equal(t, `say "hi"`, a.Vertex(0).Label)
	assert.Equal(t, "two words", a.Vertex(1).Label)
}

func TestReadPGSolver_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  string
	}{
		{"missing semicolon", "0 0 0 0\n", ErrSyntax, "line 1"},
		{"too few fields", "0 0 0;\n", ErrSyntax, "line 1"},
		{"bad owner", "0 0 2 0;\n", ErrSyntax, "line 1"},
		{"negative priority", "0 -1 0 0;\n", ErrSyntax, "line 1"},
		{"bad successor", "0 0 0 0,x;\n", ErrSyntax, "line 1"},
		{"bad header", "parity x;\n0 0 0 0;\n", ErrSyntax, "line 1"},
		{"unterminated label", "0 0 0 0 \"a;\n", ErrSyntax, "line 1"},
		{"duplicate", "0 0 0 0;\n\n0 1 1 0;\n", ErrDuplicateVertex, "line 3"},
		{"missing vertex", "0 0 0 0;\n2 0 0 0;\n", ErrMissingVertex, ""},
		{"header beyond vertices", "parity 1;\n0 0 0 0;\n", ErrMissingVertex, ""},
		{"huge header", "parity 2000000000;\n0 0 0 0;\n", ErrMissingVertex, ""},
		{"huge id", "0 0 0 0;\n2000000000 0 0 0;\n", ErrMissingVertex, ""},
		{"duplicate beyond range", "0 0 0 0;\n7 0 0 0;\n7 0 0 0;\n", ErrMissingVertex, ""},
		{"unknown successor", "0 0 0 5;\n", arena.ErrUnknownVertex, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPGSolver(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestReadPGSolver_RejectsSparseIDsWithoutAllocating(t *testing.T) {
	inputs := []string{
		"parity 2000000000;\n0 0 0 0;\n",
		"0 0 0 0;\n1999999999 1 1 0;\n",
		"parity 20000000;\n0 0 0 0;\n1 0 0 0;\n",
	}
	for _, in := range inputs {
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		_, err := ReadPGSolver(strings.NewReader(in))
		runtime.ReadMemStats(&after)

		require.ErrorIs(t, err, ErrMissingVertex, "%q", in)
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20), "%q", in)
	}
}

func FuzzReadPGSolver(f *testing.F) {
	f.Add(sample)
	f.Add("parity 2000000000;\n0 0 0 0;\n")
	f.Add("0 0 0 0;\n2000000000 0 0 0;\n")
	f.Add("parity 1;\nstart 0;\n1 3 1 0 \"b\";\n0 0 0 1,0;\n")
	f.Add("0 0 0 0;\n0 1 1 0;\n")
	f.Fuzz(func(t *testing.T, in string) {
		a, err := ReadPGSolver(strings.NewReader(in))
		if err != nil {
			return
		}
		// Every vertex comes from its own line.
		assert.LessOrEqual(t, a.Size(), strings.Count(in, ";"))

		var buf bytes.Buffer
		require.NoError(t, WritePGSolver(a, &buf))
		b, err := ReadPGSolver(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		var again bytes.Buffer
		require.NoError(t, WritePGSolver(b, &again))
		assert.Equal(t, buf.String(), again.String())
	})
}

func TestWritePGSolver_RoundTrip(t *testing.T) {
	a, err := ReadPGSolver(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePGSolver(a, &buf))
	assert.Equal(t, "parity 3;\n0 2 0 1,2 \"a\";\n1 1 1 0;\n2 0 0 2;\n3 3 1 0,3;\n", buf.String())

	b, err := ReadPGSolver(&buf)
	require.NoError(t, err)
	var again bytes.Buffer
	require.NoError(t, WritePGSolver(b, &again))
	assert.Equal(t, "parity 3;\n0 2 0 1,2 \"a\";\n1 1 1 0;\n2 0 0 2;\n3 3 1 0,3;\n", again.String())
}

func TestWritePGSolver_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePGSolver(arena.New(0), &buf))
	assert.Empty(t, buf.String())

	a, err := ReadPGSolver(&buf)
	require.NoError(t, err)
	assert.Zero(t, a.Size())
}

func TestJSON_RoundTrip(t *testing.T) {
	a, err := ReadPGSolver(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	winners := []arena.Player{arena.Even, arena.Odd, arena.Even, arena.Odd}
	require.NoError(t, WriteJSON(a, winners, &buf))
	assert.Contains(t, buf.String(), `"winner": "odd"`)
	assert.Contains(t, buf.String(), `"owner": "even"`)

	b, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.Size(), b.Size())
	for id := range a.Size() {
		assert.Equal(t, a.Vertex(id), b.Vertex(id))
	}
}

func TestWriteJSON_NoWinners(t *testing.T) {
	a, err := ReadPGSolver(strings.NewReader(sample))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(a, nil, &buf))
	assert.NotContains(t, buf.String(), "winner")

	assert.Error(t, WriteJSON(a, []arena.Player{arena.Odd}, &buf))
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"id out of range", `{"vertices":[{"id":1,"successors":[0]}]}`, ErrMissingVertex},
		{"duplicate", `{"vertices":[{"id":0,"successors":[0]},{"id":0,"successors":[0]}]}`, ErrDuplicateVertex},
		{"no successor", `{"vertices":[{"id":0,"successors":[]}]}`, arena.ErrNoSuccessor},
		{"unknown successor", `{"vertices":[{"id":0,"successors":[3]}]}`, arena.ErrUnknownVertex},
		{"negative priority", `{"vertices":[{"id":0,"priority":-2,"successors":[0]}]}`, arena.ErrNegativePriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ReadJSON(strings.NewReader(`{"vertices":[{"id":0,"owner":"both"}]}`))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"game.json":    FormatJSON,
		"GAME.JSON":    FormatJSON,
		"game.json.gz": FormatJSON,
		"game.gm":      FormatPGSolver,
		"game.gm.gz":   FormatPGSolver,
		"game":         FormatPGSolver,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "game.gm")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o644))

	compressed := filepath.Join(dir, "game.gm.gz")
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(compressed, gz.Bytes(), 0o644))

	a, err := ImportPGSolver(plain)
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "game.json")
	require.NoError(t, ExportJSON(a, nil, jsonPath))

	for _, path := range []string{plain, compressed, jsonPath} {
		got, err := ImportFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, 4, got.Size(), path)
	}

	_, err = ImportFile(filepath.Join(dir, "missing.gm"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.gm")
	require.NoError(t, os.WriteFile(bad, []byte("0 0 0;\n"), 0o644))
	_, err = ImportFile(bad)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Error(), bad)

	out := filepath.Join(dir, "out.gm")
	require.NoError(t, ExportPGSolver(a, out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "parity 3;"))
}
