package testutil

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/msms/core/school"
	"github.com/trezcool/msms/services/logger"
	"github.com/trezcool/msms/storage/inmem"
)

var ErrSaveFailed = errors.New("disk full")

// FlakyPersister wraps an in-memory store and fails every Save while Fail is set.
type FlakyPersister struct {
	*inmem.Store
	Fail bool
}

func (p *FlakyPersister) Save(doc school.Document) error {
	if p.Fail {
		return ErrSaveFailed
	}
	return p.Store.Save(doc)
}

// NewStore returns a RecordStore over an empty in-memory persister, optionally seeded with the demo data.
func NewStore(t *testing.T, seedDemo bool) (*school.RecordStore, *FlakyPersister) {
	t.Helper()
	p := &FlakyPersister{Store: inmem.New()}
	return school.NewRecordStore(p, logsvc.Discard{}, school.Options{SeedDemo: seedDemo}), p
}

func CreateStudent(t *testing.T, store *school.RecordStore, name string) school.Student {
	t.Helper()
	st, err := store.AddStudent(school.NewStudent{Name: name})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func CreateTeacher(t *testing.T, store *school.RecordStore, name, speciality string) school.Teacher {
	t.Helper()
	tch, err := store.AddTeacher(school.NewTeacher{Name: name, Speciality: speciality})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

// CreateCourse adds a course and its lessons, given as day/time pairs held in "Room 1".
func CreateCourse(t *testing.T, store *school.RecordStore, name, instrument string, teacherID int, lessons ...[2]string) school.Course {
	t.Helper()
	c, err := store.AddCourse(school.NewCourse{Name: name, Instrument: instrument, TeacherID: teacherID})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	for _, l := range lessons {
		if _, err := store.AddLesson(c.ID, school.NewLesson{Day: l[0], StartTime: l[1], Room: "Room 1"}); err != nil {
			t.Fatalf("CreateCourse() failed: %v", err)
		}
	}
	c, err = store.FindCourseByID(c.ID)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func Enroll(t *testing.T, store *school.RecordStore, studentID, courseID int) {
	t.Helper()
	if err := store.EnrollStudentInCourse(studentID, courseID); err != nil {
		t.Fatalf("Enroll() failed: %v", err)
	}
}
