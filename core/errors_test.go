package core_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/msms/core"
)

func TestErrorKinds(t *testing.T) {
	notFound := core.NewNotFoundError("student not found")
	conflict := core.NewConflictError(errors.New("already enrolled"))
	invalid := core.NewValidationError(nil,
		core.FieldError{Field: "name", Error: "name cannot be blank"},
		core.FieldError{Field: "day", Error: "day must be a day of the week"},
	)

	tests := []struct {
		name         string
		err          error
		wantMsg      string
		isNotFound   bool
		isConflict   bool
		isValidation bool
	}{
		{name: "not found", err: notFound, wantMsg: "student not found", isNotFound: true},
		{name: "wrapped not found", err: errors.Wrap(notFound, "enroll"), wantMsg: "enroll: student not found", isNotFound: true},
		{name: "conflict", err: conflict, wantMsg: "already enrolled", isConflict: true},
		{name: "validation", err: invalid, wantMsg: "name cannot be blank; day must be a day of the week", isValidation: true},
		{
			name:         "validation with cause",
			err:          core.NewValidationError(errors.New("nothing to update")),
			wantMsg:      "nothing to update",
			isValidation: true,
		},
		{name: "plain", err: errors.New("disk full"), wantMsg: "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.wantMsg)
			assert.Equal(t, tt.isNotFound, core.IsNotFound(tt.err))
			assert.Equal(t, tt.isConflict, core.IsConflict(tt.err))
			assert.Equal(t, tt.isValidation, core.IsValidation(tt.err))
		})
	}
}
