package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeaders_Comments(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    HeaderMap
	}{
		{
			name:    "Canonical headers",
			headers: []string{"Date", "Owner", "Comments"},
			want:    HeaderMap{FieldDate: "Date", FieldOwner: "Owner", FieldMessage: "Comments"},
		},
		{
			name:    "Message header",
			headers: []string{"date", "owner", "Message"},
			want:    HeaderMap{FieldDate: "date", FieldOwner: "owner", FieldMessage: "Message"},
		},
		{
			name:    "Exact case preferred",
			headers: []string{"date", "Date", "Owner", "comment"},
			want:    HeaderMap{FieldDate: "Date", FieldOwner: "Owner", FieldMessage: "comment"},
		},
		{
			name:    "Case insensitive fallback",
			headers: []string{"DATE", "OWNER", "MESSAGE"},
			want:    HeaderMap{FieldDate: "DATE", FieldOwner: "OWNER", FieldMessage: "MESSAGE"},
		},
		{
			name:    "No headers falls back to defaults",
			headers: nil,
			want:    HeaderMap{FieldDate: "Date", FieldOwner: "Owner", FieldMessage: "Comments"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveHeaders(tt.headers, CommentFields))
		})
	}
}

func TestResolveHeaders_AssetAlias(t *testing.T) {
	h := ResolveHeaders([]string{"Date", "owner", "stock_value", "Savings"}, AssetFields)
	assert.Equal(t, "Date", h[FieldDate])
	assert.Equal(t, "stock_value", h["stock_krw"])
	assert.Equal(t, "Savings", h["savings"])
	assert.Equal(t, "net_cash", h["net_cash"])
}
