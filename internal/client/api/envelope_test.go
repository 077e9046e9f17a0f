package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgapi "github.com/nberthel/formadmin/pkg/api"
)

func TestDecodePage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantItems int
	}{
		{
			name:      "classic pagination",
			body:      `{"count": 42, "next": null, "previous": null, "results": [{"id": 1, "nom": "A"}, {"id": 2, "nom": "B"}]}`,
			wantCount: 42,
			wantItems: 2,
		},
		{
			name:      "wrapped envelope",
			body:      `{"success": true, "message": "ok", "data": {"count": 7, "results": [{"id": 3, "nom": "C"}]}}`,
			wantCount: 7,
			wantItems: 1,
		},
		{
			name:      "bare array",
			body:      `[{"id": 1, "nom": "A"}, {"id": 2, "nom": "B"}, {"id": 3, "nom": "C"}]`,
			wantCount: 3,
			wantItems: 3,
		},
		{
			name:      "wrapped bare array",
			body:      `{"success": true, "data": [{"id": 9, "nom": "Z"}]}`,
			wantCount: 1,
			wantItems: 1,
		},
		{
			name:      "empty results",
			body:      `{"count": 0, "results": []}`,
			wantCount: 0,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := decodePage[pkgapi.NomID](([]byte)(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, page.Count)
			assert.Len(t, page.Items, tt.wantItems)
		})
	}
}

func TestDecodePage_Invalid(t *testing.T) {
	_, err := decodePage[pkgapi.NomID]([]byte(`not json`))
	require.Error(t, err)
}

func TestUnwrapEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "wrapped detail",
			body: `{"success": true, "message": "ok", "data": {"id": 1}}`,
			want: `{"id": 1}`,
		},
		{
			name: "plain detail passes through",
			body: `{"id": 1, "nom": "A"}`,
			want: `{"id": 1, "nom": "A"}`,
		},
		{
			name: "array passes through",
			body: `[1, 2]`,
			want: `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(unwrapEnvelope([]byte(tt.body))))
		})
	}
}
