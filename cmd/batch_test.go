package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tripgen-cli/internal/model"
)

func TestParseBatchRow(t *testing.T) {
	tests := []struct {
		name    string
		record  []string
		want    batchRow
		wantErr bool
	}{
		{
			name:   "code and size",
			record: []string{"210", "100"},
			want:   batchRow{Code: "210", Size: 100},
		},
		{
			name:   "with modes",
			record: []string{"710", "50", "person;walk"},
			want: batchRow{
				Code:  "710",
				Size:  50,
				Modes: []model.Mode{model.ModePerson, model.ModeWalk},
			},
		},
		{
			name:   "with label",
			record: []string{"820", "250", "", "riverside retail"},
			want:   batchRow{Code: "820", Size: 250, Label: "riverside retail"},
		},
		{
			name:   "whitespace trimmed",
			record: []string{" 210 ", " 100 ", " person "},
			want:   batchRow{Code: "210", Size: 100, Modes: []model.Mode{model.ModePerson}},
		},
		{
			name:    "too few fields",
			record:  []string{"210"},
			wantErr: true,
		},
		{
			name:    "bad size",
			record:  []string{"210", "lots"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBatchRow(tt.record)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadBatchFile(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "batch.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("header skipped", func(t *testing.T) {
		rows, err := readBatchFile(write(t, "code,size\n210,100\n710,50\n"))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "210", rows[0].Code)
	})

	t.Run("no header", func(t *testing.T) {
		rows, err := readBatchFile(write(t, "210,100\n"))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("bad row aborts the read", func(t *testing.T) {
		_, err := readBatchFile(write(t, "210,100\n710,huge\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readBatchFile(filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}
