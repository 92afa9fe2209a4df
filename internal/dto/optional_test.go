package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional_ThreeStates(t *testing.T) {
	type payload struct {
		Field Optional[string] `json:"field"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.False(t, absent.Field.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"field": null}`), &null))
	require.True(t, null.Field.Set)
	require.Nil(t, null.Field.Value)

	var value payload
	require.NoError(t, json.Unmarshal([]byte(`{"field": "hello"}`), &value))
	require.True(t, value.Field.Set)
	require.NotNil(t, value.Field.Value)
	require.Equal(t, "hello", *value.Field.Value)
}

func TestOptional_ZeroValueIsPresent(t *testing.T) {
	type payload struct {
		Count Optional[int] `json:"count"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"count": 0}`), &p))
	require.True(t, p.Count.Set)
	require.NotNil(t, p.Count.Value)
	require.Equal(t, 0, *p.Count.Value)
}

func TestOptional_TypeMismatch(t *testing.T) {
	type payload struct {
		Count Optional[int] `json:"count"`
	}

	var p payload
	require.Error(t, json.Unmarshal([]byte(`{"count": "ten"}`), &p))
}
