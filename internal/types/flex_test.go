package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexID(t *testing.T) {
	tests := []struct {
		in   string
		want FlexID
	}{
		{`7`, 7},
		{`"42"`, 42},
		{`" 9 "`, 9},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		var got struct {
			ID FlexID `json:"id"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"id":`+tt.in+`}`), &got), tt.in)
		assert.Equal(t, tt.want, got.ID, tt.in)
	}

	var bad FlexID
	assert.Error(t, json.Unmarshal([]byte(`"seven"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))

	assert.Nil(t, FlexID(0).Ptr())
	require.NotNil(t, FlexID(3).Ptr())
	assert.Equal(t, uint(3), *FlexID(3).Ptr())
}

func TestFlexList(t *testing.T) {
	var tags FlexList[string]
	require.NoError(t, json.Unmarshal([]byte(`["Work","Family"]`), &tags))
	assert.Equal(t, []string{"Work", "Family"}, tags.Slice())

	require.NoError(t, json.Unmarshal([]byte(`"Work,Family"`), &tags))
	assert.Equal(t, []string{"Work", "Family"}, tags.Slice())

	require.NoError(t, json.Unmarshal([]byte(`null`), &tags))
	assert.Nil(t, tags.Slice())

	var ids FlexList[int]
	require.NoError(t, json.Unmarshal([]byte(`5`), &ids))
	assert.Equal(t, []int{5}, ids.Slice())
}

func TestCustomError(t *testing.T) {
	err := NewCustomError(423, "security.locked", "locked for %s", "now")
	assert.Equal(t, "423: locked for now [type: security.locked]", err.Error())
}
