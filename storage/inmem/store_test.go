package inmem

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core/school"
)

func TestStore_Load_empty(t *testing.T) {
	_, err := New().Load()
	assert.Equal(t, school.ErrNoDocument, errors.Cause(err))
}

func TestStore_SaveLoad(t *testing.T) {
	s := New()
	ts := time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)
	doc := school.Document{
		Students:      []school.Student{{ID: 1, Name: "Alice", EnrolledCourseIDs: []int{101}}},
		Teachers:      []school.Teacher{},
		Courses:       []school.Course{{ID: 101, Name: "Piano 101", TeacherID: 1, EnrolledStudentIDs: []int{1}, Lessons: []school.Lesson{}}},
		Attendance:    []school.AttendanceRecord{{StudentID: 1, CourseID: 101, Timestamp: ts, Status: school.StatusPresent}},
		FinanceLog:    []school.PaymentRecord{},
		NextStudentID: 2,
		NextTeacherID: 1,
		NextCourseID:  102,
	}
	require.NoError(t, s.Save(doc))

	// the saved copy is not shared with the caller
	doc.Students[0].Name = "changed"

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Students[0].Name)
	assert.Equal(t, []int{101}, got.Students[0].EnrolledCourseIDs)
	assert.True(t, ts.Equal(got.Attendance[0].Timestamp))
	assert.Equal(t, 102, got.NextCourseID)
	assert.Equal(t, 1, s.Saves())
}
