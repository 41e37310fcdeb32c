package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeOK(t *testing.T) {
	var env *Envelope
	assert.False(t, env.OK())
	assert.True(t, (&Envelope{Code: 200}).OK())
	assert.False(t, (&Envelope{Code: 500}).OK())
}

func TestEnvelopeIsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		empty bool
	}{
		{"null response", `{"code":200,"response":null}`, true},
		{"absent response", `{"code":200}`, true},
		{"bare false", `{"code":200,"response":false}`, true},
		{"empty array", `{"code":200,"response":[]}`, true},
		{"false sentinel array", `{"code":200,"response":[false]}`, true},
		{"data array", `{"code":200,"response":[{"id":"1"}]}`, false},
		{"data object", `{"code":200,"response":{"id":"1"}}`, false},
		{"single true array", `{"code":200,"response":[true]}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var env Envelope
			require.NoError(t, json.Unmarshal([]byte(tc.body), &env))
			assert.Equal(t, tc.empty, env.IsEmpty())
		})
	}
}

func TestFlexString(t *testing.T) {
	var doc struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"17","b":17,"c":null}`), &doc))
	assert.Equal(t, "17", doc.A.String())
	assert.Equal(t, "17", doc.B.String())
	assert.Equal(t, "", doc.C.String())
}
