package school_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/services/logger"
	"github.com/trezcool/msms/storage/inmem"
	"github.com/trezcool/msms/tests"
)

type brokenPersister struct {
	loadErr error
	saved   []school.Document
}

func (p *brokenPersister) Load() (school.Document, error) { return school.Document{}, p.loadErr }

func (p *brokenPersister) Save(doc school.Document) error {
	p.saved = append(p.saved, doc)
	return nil
}

func TestNewRecordStore_fallback(t *testing.T) {
	tests := []struct {
		name         string
		loadErr      error
		seedDemo     bool
		wantStudents int
		wantCourses  int
	}{
		{name: "missing, empty", loadErr: errors.Wrap(school.ErrNoDocument, "msms.json does not exist")},
		{name: "missing, demo", loadErr: school.ErrNoDocument, seedDemo: true, wantStudents: 3, wantCourses: 3},
		{name: "corrupt, empty", loadErr: errors.New("decoding msms.json: invalid character")},
		{name: "corrupt, demo", loadErr: errors.New("decoding msms.json: invalid character"), seedDemo: true, wantStudents: 3, wantCourses: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &brokenPersister{loadErr: tt.loadErr}
			store := school.NewRecordStore(p, logsvc.Discard{}, school.Options{SeedDemo: tt.seedDemo})

			assert.Len(t, store.Students(), tt.wantStudents)
			assert.Len(t, store.Courses(), tt.wantCourses)
			assert.Empty(t, p.saved, "falling back must not write")

			// the store is usable and the first write recreates the document
			st, err := store.AddStudent(school.NewStudent{Name: "Zoe"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStudents+1, st.ID)
			assert.Len(t, p.saved, 1)
		})
	}
}

func TestRecordStore_roundTrip(t *testing.T) {
	p := inmem.New()
	store := school.NewRecordStore(p, logsvc.Discard{}, school.Options{SeedDemo: true})

	_, err := store.CheckIn(school.NewCheckIn{StudentID: 1, CourseID: 101, Status: "late"})
	require.NoError(t, err)
	_, err = store.RecordPayment(school.NewPayment{StudentID: 2, Amount: 40, Method: "Card"})
	require.NoError(t, err)
	require.NoError(t, store.RemoveStudent(3))

	reloaded := school.NewRecordStore(p, logsvc.Discard{}, school.Options{})
	assert.Equal(t, store.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, 4, reloaded.Snapshot().NextStudentID)
	assert.Equal(t, 202, reloaded.Snapshot().NextCourseID)
}

func TestRecordStore_failedSaveLeavesStateUnchanged(t *testing.T) {
	store, p := testutil.NewStore(t, true)
	before := store.Snapshot()

	p.Fail = true
	_, err := store.AddStudent(school.NewStudent{Name: "Zoe"})
	assert.Equal(t, testutil.ErrSaveFailed, errors.Cause(err))
	err = store.EnrollStudentInCourse(3, 201)
	assert.Equal(t, testutil.ErrSaveFailed, errors.Cause(err))
	_, err = store.RecordPayment(school.NewPayment{StudentID: 1, Amount: 10})
	assert.Equal(t, testutil.ErrSaveFailed, errors.Cause(err))
	assert.Equal(t, before, store.Snapshot())

	p.Fail = false
	st, err := store.AddStudent(school.NewStudent{Name: "Zoe"})
	require.NoError(t, err)
	assert.Equal(t, 4, st.ID, "failed calls do not consume ids")
}

func TestRecordStore_reconcile(t *testing.T) {
	p := inmem.New()
	require.NoError(t, p.Save(school.Document{
		Students: []school.Student{
			{ID: 1, Name: "Alice", EnrolledCourseIDs: []int{101, 999, 101}},
			{ID: 2, Name: "Liam"},
		},
		Teachers: []school.Teacher{{ID: 1, Name: "Mr. Taylor"}},
		Courses: []school.Course{
			{ID: 101, Name: "Piano 101", TeacherID: 1},
			{ID: 102, Name: "Guitar Basics", TeacherID: 1, EnrolledStudentIDs: []int{2, 7}},
		},
		NextStudentID: 1, // stale counter
	}))

	store := school.NewRecordStore(p, logsvc.Discard{}, school.Options{})
	doc := store.Snapshot()

	assert.Equal(t, []int{101}, doc.Students[0].EnrolledCourseIDs)
	assert.Equal(t, []int{102}, doc.Students[1].EnrolledCourseIDs)
	assert.Equal(t, []int{1}, doc.Courses[0].EnrolledStudentIDs)
	assert.Equal(t, []int{2}, doc.Courses[1].EnrolledStudentIDs)
	assert.Equal(t, 3, doc.NextStudentID)
	assert.Equal(t, 103, doc.NextCourseID)
	assert.NotNil(t, doc.Attendance)
	assert.NotNil(t, doc.FinanceLog)
}

func TestRecordStore_ResetDemoData(t *testing.T) {
	store, _ := testutil.NewStore(t, false)
	testutil.CreateStudent(t, store, "Zoe")

	require.NoError(t, store.ResetDemoData())

	names := make([]string, 0)
	for _, st := range store.Students() {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"Alice Johnson", "Liam Patel", "Maya Singh"}, names)
	c, err := store.FindCourseByID(101)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, c.EnrolledStudentIDs)
	assert.Len(t, c.Lessons, 2)
}

// Teacher, course, student, enroll, then two check-ins on an empty store.
func TestRecordStore_exampleScenario(t *testing.T) {
	store, _ := testutil.NewStore(t, false)

	tch, err := store.AddTeacher(school.NewTeacher{Name: "Mr. Taylor", Speciality: "Piano"})
	require.NoError(t, err)
	assert.Equal(t, 1, tch.ID)

	c, err := store.AddCourse(school.NewCourse{Name: "Piano 101", Instrument: "Piano", TeacherID: tch.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, c.ID)

	st, err := store.AddStudent(school.NewStudent{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, st.ID)

	require.NoError(t, store.EnrollStudentInCourse(1, 1))

	_, err = store.CheckIn(school.NewCheckIn{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	assert.Len(t, store.ListAttendance(school.AttendanceFilter{}), 1)

	_, err = store.CheckIn(school.NewCheckIn{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	assert.Len(t, store.ListAttendance(school.AttendanceFilter{}), 2)
}
