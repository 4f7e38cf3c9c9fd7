package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokens = []string{"", "?", "NA", "NaN"}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReadsHeaderAndRows(t *testing.T) {
	path := writeTempCSV(t, "age,sex,num\n63,1,0\n41,0,2\n")

	df, err := Load(path, testTokens)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"age", "sex", "num"}, df.Names())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), testTokens)
	require.Error(t, err)
}

func TestWriteThenLoadRoundTrip(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{63, 41}, series.Float, "age"),
		series.New([]int{0, 1}, series.Int, "target"),
	)
	path := filepath.Join(t.TempDir(), "out", "clean.csv")

	require.NoError(t, Write(df, path))

	loaded, err := Load(path, testTokens)
	require.NoError(t, err)
	assert.Equal(t, df.Nrow(), loaded.Nrow())
	assert.Equal(t, df.Names(), loaded.Names())
}

func TestFetchDownloadsDataset(t *testing.T) {
	const body = "age,sex,num\n63,1,0\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "raw", "heart.csv")
	got, err := Fetch(context.Background(), server.URL, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, string(data))
}

func TestFetchSkipsExistingFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("The server must not be hit when the file exists")
	}))
	defer server.Close()

	path := writeTempCSV(t, "age\n63\n")
	_, err := Fetch(context.Background(), server.URL, path)
	require.NoError(t, err)
}

func TestFetchRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, filepath.Join(t.TempDir(), "heart.csv"))
	require.Error(t, err)
}
