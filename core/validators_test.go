package core_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core"
)

type sample struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Count int    `json:"count" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         sample
		wantFields map[string]string
	}{
		{name: "valid", in: sample{Name: "Alice", Count: 1}},
		{
			name:       "blank name",
			in:         sample{Name: "  ", Count: 1},
			wantFields: map[string]string{"name": "name cannot be blank"},
		},
		{
			name: "several fields",
			in:   sample{Name: "Alice", Email: "nope"},
			wantFields: map[string]string{
				"email": "email must be a valid email address",
				"count": "count is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.ValidateStruct(tt.in)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.True(t, core.IsValidation(err))

			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr))
			got := make(map[string]string, len(vErr.Fields))
			for _, fld := range vErr.Fields {
				got[fld.Field] = fld.Error
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Piano", core.CleanString("  Piano \n"))
	assert.Equal(t, "piano", core.CleanString(" PIANO ", true))
	assert.True(t, core.ContainsFold("Alice Johnson", "JOHN"))
	assert.False(t, core.ContainsFold("Alice", "bob"))
}
