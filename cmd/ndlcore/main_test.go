package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theodi/ndlcore"
	"github.com/theodi/ndlcore/internal/render"
	"github.com/theodi/ndlcore/internal/version"
)

const threeRecords = `[
	{"identifier":"a1","title":"Police use of force","source":"gov.uk","format":"parquet","date":"2024-01-01","tags":["Justice"],"_distance":0.2},
	{"identifier":"b2","title":"Stop and search","source":"gov.uk","format":"text","date":"2023-06-30","tags":[],"_distance":0.3},
	{"identifier":"c3","title":"Crime outcomes","source":"ons.gov.uk","format":"text","date":null,"tags":[],"_distance":0.4}
]`

// run executes the CLI against a fake search API and returns stdout.
func run(t *testing.T, body string, args ...string) (string, error) {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(api.Close)

	cfgPath := filepath.Join(t.TempDir(), "test.yaml")
	cfg := "api:\n  base_url: " + api.URL + "\n  timeout_sec: 5\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env", "local", "--config", cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSearch_Table(t *testing.T) {
	out, err := run(t, threeRecords, "search", "police")
	require.NoError(t, err)

	assert.Contains(t, out, "Police use of force")
	assert.Contains(t, out, "ons.gov.uk")
	assert.Contains(t, out, "3 result(s)")
	assert.NotContains(t, out, "identifier", "default table hides identifier")
}

func TestSearch_TableLimitAndColumns(t *testing.T) {
	out, err := run(t, threeRecords, "search", "police", "--limit", "1", "--columns", "identifier,title")
	require.NoError(t, err)

	assert.Contains(t, out, "a1")
	assert.NotContains(t, out, "Stop and search")
	assert.Contains(t, out, "1 result(s)")
}

func TestSearch_CSV(t *testing.T) {
	out, err := run(t, threeRecords, "search", "police", "-o", "csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"identifier", "title", "source", "format", "date", "tags", "_distance"}, rows[0])
	assert.Equal(t, "", rows[3][4], "null date is empty")
}

func TestSearch_JSON(t *testing.T) {
	out, err := run(t, threeRecords, "search", "police", "-o", "json", "-n", "2")
	require.NoError(t, err)

	var resp ndlcore.AgentSearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.Metadata.TotalCount)
	assert.Len(t, resp.Data, 2)
	assert.True(t, resp.Metadata.ColumnDescriptions.Equal(ndlcore.CorpusSchema()))
}

func TestSearch_Errors(t *testing.T) {
	_, err := run(t, `{"error":"bad query"}`, "search", "police")
	require.ErrorIs(t, err, ndlcore.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "bad query")

	_, err = run(t, threeRecords, "search", "police", "-o", "xml")
	require.ErrorIs(t, err, render.ErrUnknownFormat)

	_, err = run(t, threeRecords, "search", "police", "-n", "-3")
	require.Error(t, err)

	_, err = run(t, threeRecords, "search")
	require.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := run(t, `[]`, "schema")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, ndlcore.CorpusSchema().Map(), got)

	out, err = run(t, `[]`, "schema", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "collection_time")

	_, err = run(t, `[]`, "schema", "-o", "csv")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, `[]`, "version")
	require.NoError(t, err)
	assert.Equal(t, version.String()+"\n", out)
}

func TestMCP_InvalidTransport(t *testing.T) {
	_, err := run(t, `[]`, "mcp", "--transport", "websocket")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mcp.transport")
}
