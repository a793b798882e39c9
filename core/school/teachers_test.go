package school_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/tests"
)

func TestRecordStore_AddTeacher(t *testing.T) {
	store, _ := testutil.NewStore(t, false)

	_, err := store.AddTeacher(school.NewTeacher{Name: ""})
	assert.True(t, core.IsValidation(err))
	if vErr, ok := err.(*core.ValidationError); assert.True(t, ok) {
		assert.Equal(t, []core.FieldError{{Field: "name", Error: "name cannot be blank"}}, vErr.Fields)
	}

	tch, err := store.AddTeacher(school.NewTeacher{Name: " Ms. Chen ", Speciality: " Guitar "})
	require.NoError(t, err)
	assert.Equal(t, school.Teacher{ID: 1, Name: "Ms. Chen", Speciality: "Guitar"}, tch)
}

func TestRecordStore_UpdateTeacher(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	_, err := store.UpdateTeacher(2, school.TeacherPatch{})
	assert.Equal(t, school.ErrEmptyPatch, err)
	_, err = store.UpdateTeacher(9, school.TeacherPatch{Speciality: strPtr("Bass")})
	assert.Equal(t, school.ErrTeacherNotFound, err)

	tch, err := store.UpdateTeacher(2, school.TeacherPatch{Speciality: strPtr("Bass"), Email: strPtr("chen@test.cd")})
	require.NoError(t, err)
	assert.Equal(t, school.Teacher{ID: 2, Name: "Ms. Chen", Email: "chen@test.cd", Speciality: "Bass"}, tch)
}

func TestRecordStore_RemoveTeacher(t *testing.T) {
	store, _ := testutil.NewStore(t, true)
	spare := testutil.CreateTeacher(t, store, "Mx. Green", "Piano")

	tests := []struct {
		name    string
		id      int
		wantErr error
	}{
		{name: "unknown", id: 99, wantErr: school.ErrTeacherNotFound},
		{name: "still assigned", id: 1, wantErr: school.ErrTeacherAssigned},
		{name: "unassigned", id: spare.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, store.RemoveTeacher(tt.id))
		})
	}

	// reassigning frees the teacher
	other := testutil.CreateTeacher(t, store, "Mr. Brown", "Piano")
	c, err := store.ReassignCourse(101, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, c.TeacherID)
	assert.NoError(t, store.RemoveTeacher(1))
}

func TestRecordStore_FindTeachers(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	tests := []struct {
		term string
		want []int
	}{
		{term: "violin", want: []int{3}},
		{term: "ms.", want: []int{2}},
		{term: "", want: []int{1, 2, 3}},
		{term: "drums", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			ids := make([]int, 0)
			for _, tch := range store.FindTeachers(tt.term) {
				ids = append(ids, tch.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
