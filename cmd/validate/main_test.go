package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  string
	}{
		{
			name:     "valid",
			filename: "school_supplies.json",
			content: `{"items":[{"name":"Gel Pens","price":6,"category":"school",
				"financialInfo":{"term":"Want","simpleDefinition":"Something nice to have","kidExplanation":"Your old pens still write"}}]}`,
		},
		{
			name:     "bad filename",
			filename: "School-Supplies.json",
			content:  `{"items":[]}`,
			wantErr:  "snake_case",
		},
		{
			name:     "wrong extension",
			filename: "catalog.yaml",
			content:  `items: []`,
			wantErr:  ".json extension",
		},
		{
			name:     "invalid json",
			filename: "broken.json",
			content:  `{"items":[`,
			wantErr:  "invalid JSON",
		},
		{
			name:     "unknown field",
			filename: "extra.json",
			content:  `{"items":[{"name":"Kite","price":18,"colour":"red"}]}`,
			wantErr:  "strict JSON",
		},
		{
			name:     "catalog rules",
			filename: "dupes.json",
			content:  `{"items":[{"name":"Kite","price":18},{"name":"Kite","price":-1}]}`,
			wantErr:  "duplicate name",
		},
		{
			name:     "bad category",
			filename: "category.json",
			content:  `{"items":[{"name":"Kite","price":18,"category":"Outdoor Toys"}]}`,
			wantErr:  "single lowercase word",
		},
		{
			name:     "missing explanation",
			filename: "lesson.json",
			content:  `{"items":[{"name":"Kite","price":18,"financialInfo":{"term":"Want","simpleDefinition":"Nice to have"}}]}`,
			wantErr:  "kidExplanation is required",
		},
		{
			name:     "not kid safe",
			filename: "rude.json",
			content: `{"items":[{"name":"Kite","price":18,
				"financialInfo":{"term":"Want","simpleDefinition":"Nice to have","kidExplanation":"Don't be stupid"}}]}`,
			wantErr: "not kid-safe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCatalogValidator().validateFile(writeFile(t, tt.filename, tt.content))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateFile_ShippedCatalog(t *testing.T) {
	assert.NoError(t, NewCatalogValidator().validateFile(filepath.Join("..", "..", "data", "catalog.json")))
}
