package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequest_ApplyDefaults(t *testing.T) {
	req := GenerateRequest{}
	req.ApplyDefaults()

	assert.Equal(t, DefaultTemplate, req.Template)
	assert.Equal(t, DefaultLanguage, req.Language)
	assert.Equal(t, DefaultCountry, req.Country)
}

func TestGenerateRequest_ApplyDefaultsKeepsValues(t *testing.T) {
	req := GenerateRequest{Template: "modern", Language: "de", Country: "de"}
	req.ApplyDefaults()

	assert.Equal(t, "modern", req.Template)
	assert.Equal(t, "de", req.Language)
	assert.Equal(t, "de", req.Country)
}

func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr bool
	}{
		{
			name: "valid colours",
			req: GenerateRequest{
				Template:     "ats_optimized",
				CustomColors: CustomColors{Primary: "#4B5EAA", Accent: "#fff"},
			},
			wantErr: false,
		},
		{
			name:    "empty request",
			req:     GenerateRequest{},
			wantErr: false,
		},
		{
			name:    "invalid colour",
			req:     GenerateRequest{CustomColors: CustomColors{Primary: "blue"}},
			wantErr: true,
		},
		{
			name:    "non alpha language",
			req:     GenerateRequest{Language: "e1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateRequest_NullData(t *testing.T) {
	var req GenerateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"data": null, "template": "modern"}`), &req))
	assert.Nil(t, req.Data)
	assert.Equal(t, "modern", req.Template)
}
