package school_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/tests"
)

func strPtr(s string) *string { return &s }

func TestRecordStore_AddStudent(t *testing.T) {
	store, _ := testutil.NewStore(t, false)

	tests := []struct {
		name     string
		in       school.NewStudent
		wantErr  bool
		wantName string
		wantMail string
	}{
		{name: "blank name", in: school.NewStudent{Name: "   "}, wantErr: true},
		{name: "bad email", in: school.NewStudent{Name: "Alice", Email: "nope"}, wantErr: true},
		{name: "trimmed", in: school.NewStudent{Name: "  Alice  ", Email: " ALICE@Test.cd "}, wantName: "Alice", wantMail: "alice@test.cd"},
		{name: "no email", in: school.NewStudent{Name: "Liam"}, wantName: "Liam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := store.AddStudent(tt.in)
			if tt.wantErr {
				assert.True(t, core.IsValidation(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, st.Name)
			assert.Equal(t, tt.wantMail, st.Email)
			assert.Empty(t, st.EnrolledCourseIDs)
		})
	}
}

func TestRecordStore_studentIDsNeverRepeat(t *testing.T) {
	store, _ := testutil.NewStore(t, false)

	seen := map[int]bool{}
	last := 0
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		st := testutil.CreateStudent(t, store, name)
		assert.Greater(t, st.ID, last)
		assert.False(t, seen[st.ID])
		seen[st.ID], last = true, st.ID
		if i%2 == 0 {
			require.NoError(t, store.RemoveStudent(st.ID))
		}
	}
	st := testutil.CreateStudent(t, store, "F")
	assert.Equal(t, 6, st.ID)
}

func TestRecordStore_RegisterStudent(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	tests := []struct {
		name         string
		studentName  string
		instrument   string
		wantCourseID int
		wantErr      func(error) bool
	}{
		{name: "missing fields", studentName: " ", instrument: "", wantErr: core.IsValidation},
		{name: "duplicate name", studentName: "alice johnson", instrument: "Piano", wantErr: core.IsConflict},
		{name: "matching course", studentName: "Noah Kim", instrument: "guitar", wantCourseID: 102},
		{name: "no course", studentName: "Emma Stone", instrument: "Drums"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, courseID, err := store.RegisterStudent(tt.studentName, tt.instrument)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCourseID, courseID)
			if courseID != 0 {
				assert.Equal(t, []int{courseID}, st.EnrolledCourseIDs)
				c, err := store.FindCourseByID(courseID)
				require.NoError(t, err)
				assert.True(t, c.HasStudent(st.ID))
			} else {
				assert.Empty(t, st.EnrolledCourseIDs)
			}
		})
	}
}

func TestRecordStore_RegisterStudent_messages(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	_, _, err := store.RegisterStudent(" ", "")
	assert.EqualError(t, err, "name cannot be blank; instrument cannot be blank")
}

func TestRecordStore_UpdateStudent(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	tests := []struct {
		name    string
		id      int
		patch   school.StudentPatch
		wantErr func(error) bool
		want    school.Student
	}{
		{name: "empty patch", id: 1, wantErr: core.IsValidation},
		{name: "blank name", id: 1, patch: school.StudentPatch{Name: strPtr(" ")}, wantErr: core.IsValidation},
		{name: "bad email", id: 1, patch: school.StudentPatch{Email: strPtr("x@")}, wantErr: core.IsValidation},
		{name: "unknown", id: 42, patch: school.StudentPatch{Name: strPtr("X")}, wantErr: core.IsNotFound},
		{
			name:  "email only",
			id:    1,
			patch: school.StudentPatch{Email: strPtr("Alice@Test.cd")},
			want:  school.Student{ID: 1, Name: "Alice Johnson", Email: "alice@test.cd", EnrolledCourseIDs: []int{101}},
		},
		{
			name:  "name only",
			id:    1,
			patch: school.StudentPatch{Name: strPtr(" Alice J. ")},
			want:  school.Student{ID: 1, Name: "Alice J.", Email: "alice@test.cd", EnrolledCourseIDs: []int{101}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := store.UpdateStudent(tt.id, tt.patch)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, st)
		})
	}
}

func TestRecordStore_RemoveStudent(t *testing.T) {
	store, _ := testutil.NewStore(t, true)
	_, err := store.CheckIn(school.NewCheckIn{StudentID: 1, CourseID: 101})
	require.NoError(t, err)

	require.NoError(t, store.RemoveStudent(1))
	assert.True(t, core.IsNotFound(store.RemoveStudent(1)))

	_, err = store.FindStudentByID(1)
	assert.Equal(t, school.ErrStudentNotFound, err)
	c, err := store.FindCourseByID(101)
	require.NoError(t, err)
	assert.Empty(t, c.EnrolledStudentIDs)
	assert.Len(t, store.ListAttendance(school.AttendanceFilter{StudentID: 1}), 1, "history is kept")
}

func TestRecordStore_findStudents(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	st, err := store.FindStudentByName("  maya SINGH ")
	require.NoError(t, err)
	assert.Equal(t, 3, st.ID)
	_, err = store.FindStudentByName("")
	assert.Equal(t, school.ErrStudentNotFound, err)

	tests := []struct {
		term string
		want []int
	}{
		{term: "a", want: []int{1, 2, 3}},
		{term: "PATEL", want: []int{2}},
		{term: "zz", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			ids := make([]int, 0)
			for _, st := range store.FindStudents(tt.term) {
				ids = append(ids, st.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRecordStore_SuggestStudents(t *testing.T) {
	store, _ := testutil.NewStore(t, true)

	got := store.SuggestStudents("alise")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Alice Johnson", got[0].Name)
	}
	assert.Empty(t, store.SuggestStudents("qwxz"))
	assert.Empty(t, store.SuggestStudents(" "))
}
