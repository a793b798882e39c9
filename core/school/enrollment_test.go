package school_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/tests"
)

func TestRecordStore_EnrollStudentInCourse(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	tests := []struct {
		name      string
		studentID int
		courseID  int
		wantErr   error
	}{
		{name: "unknown student", studentID: 42, courseID: 101, wantErr: school.ErrInvalidStudentOrCourse},
		{name: "unknown course", studentID: 3, courseID: 42, wantErr: school.ErrInvalidStudentOrCourse},
		{name: "first time", studentID: 3, courseID: 201},
		{name: "second time", studentID: 3, courseID: 201, wantErr: school.ErrAlreadyEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, store.EnrollStudentInCourse(tt.studentID, tt.courseID))
		})
	}

	st, err := store.FindStudentByID(3)
	require.NoError(t, err)
	c, err := store.FindCourseByID(201)
	require.NoError(t, err)
	assert.Equal(t, []int{201}, st.EnrolledCourseIDs)
	assert.Equal(t, []int{3}, c.EnrolledStudentIDs, "enrolled exactly once")
}

func TestRecordStore_UnenrollStudent(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	tests := []struct {
		name      string
		studentID int
		courseID  int
		wantErr   error
	}{
		{name: "unknown course", studentID: 1, courseID: 42, wantErr: school.ErrInvalidStudentOrCourse},
		{name: "not enrolled", studentID: 1, courseID: 102, wantErr: school.ErrNotEnrolled},
		{name: "enrolled", studentID: 1, courseID: 101},
		{name: "again", studentID: 1, courseID: 101, wantErr: school.ErrNotEnrolled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, store.UnenrollStudent(tt.studentID, tt.courseID))
		})
	}

	st, err := store.FindStudentByID(1)
	require.NoError(t, err)
	c, err := store.FindCourseByID(101)
	require.NoError(t, err)
	assert.Empty(t, st.EnrolledCourseIDs)
	assert.Empty(t, c.EnrolledStudentIDs)
}
