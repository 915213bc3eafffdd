package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	env := Success(map[string]string{"name": "x"})
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Nil(t, env.Count)
}

func TestErrorEnvelopeOmitsData(t *testing.T) {
	body, err := json.Marshal(Error("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, string(body))
}

func TestListTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{total: 0, limit: 20, want: 0},
		{total: 20, limit: 20, want: 1},
		{total: 21, limit: 20, want: 2},
		{total: 45, limit: 10, want: 5},
	}
	for _, tc := range cases {
		env := List([]int{}, tc.total, 1, tc.limit)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, tc.want, env.Pagination.TotalPages)
		require.NotNil(t, env.Count)
		assert.Equal(t, tc.total, *env.Count)
	}
}

func TestValidationFailed(t *testing.T) {
	env := ValidationFailed([]ValidationError{{Field: "Email", Message: "failed on the 'required' rule"}})
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Error)
	assert.Len(t, env.Errors, 1)
}
