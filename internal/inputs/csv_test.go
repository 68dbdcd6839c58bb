package inputs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		column  string
		want    []string
		wantErr error
	}{
		{
			name:   "single column",
			csv:    "value\na\nb\nc\n",
			column: "value",
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "column by header name",
			csv:    "height,value\n1,x\n2,y\n",
			column: "value",
			want:   []string{"x", "y"},
		},
		{
			name:   "byte order mark",
			csv:    "\ufeffvalue\nq\n",
			column: "value",
			want:   []string{"q"},
		},
		{
			name:   "header only",
			csv:    "value\n",
			column: "value",
			want:   []string{},
		},
		{
			name:   "empty file",
			csv:    "",
			column: "value",
			want:   []string{},
		},
		{
			name:   "values kept verbatim",
			csv:    "value\nPUBKEY:04ab\nno_address_found\n",
			column: "value",
			want:   []string{"PUBKEY:04ab", "no_address_found"},
		},
		{
			name:    "missing column",
			csv:     "address\na\n",
			column:  "value",
			wantErr: ErrColumnNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.csv), tt.column)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadMalformedRow(t *testing.T) {
	_, err := Read(strings.NewReader("value\na\nb,c\n"), "value")
	assert.Error(t, err)
}

func TestReadColumnMissingFile(t *testing.T) {
	_, err := ReadColumn(filepath.Join(t.TempDir(), "missing.csv"), DefaultColumn)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	addrs := writeFile(t, "addresses.csv", "value\n1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa\n")
	txids := writeFile(t, "txids.csv", "value\naa\nbb\n")

	set, err := Load(addrs, txids, DefaultColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"}, set.Addresses)
	assert.Equal(t, []string{"aa", "bb"}, set.Txids)
}

func TestLoadFailsOnEitherFile(t *testing.T) {
	good := writeFile(t, "good.csv", "value\na\n")
	missing := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(good, missing, DefaultColumn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load transaction ids")

	_, err = Load(missing, good, DefaultColumn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load addresses")
}

func TestWriteColumnReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "txids.csv")
	values := []string{"aa", "PUBKEY:04ab", "with,comma"}

	require.NoError(t, WriteColumn(path, DefaultColumn, values))

	got, err := ReadColumn(path, DefaultColumn)
	require.NoError(t, err)
	assert.Equal(t, values, got)
}

func TestWriteColumnReplacesFile(t *testing.T) {
	path := writeFile(t, "addresses.csv", "value\nold1\nold2\nold3\n")

	require.NoError(t, WriteColumn(path, DefaultColumn, []string{"new"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "value\nnew\n", string(data))
}
