package school

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/msms/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNoDocument             = errors.New("no persisted document")
	ErrStudentNotFound        = core.NewNotFoundError("student not found")
	ErrTeacherNotFound        = core.NewNotFoundError("teacher not found")
	ErrCourseNotFound         = core.NewNotFoundError("course not found")
	ErrInvalidStudentOrCourse = core.NewNotFoundError("invalid student or course")
	ErrAlreadyEnrolled        = core.NewConflictError(errors.New("student already enrolled in this course"))
	ErrNotEnrolled            = core.NewConflictError(errors.New("student is not enrolled in this course"))
	ErrStudentExists          = core.NewConflictError(errors.New("a student with that name already exists"))
	ErrTeacherAssigned        = core.NewConflictError(errors.New("teacher is still assigned to a course"))
	ErrUnknownReport          = core.NewValidationError(errors.New("unknown report kind (want payments or attendance)"))
	ErrEmptyPatch             = core.NewValidationError(errors.New("nothing to update"))
)

type (
	// Document is the whole persisted data set.
	Document struct {
		Students      []Student          `json:"students"`
		Teachers      []Teacher          `json:"teachers"`
		Courses       []Course           `json:"courses"`
		Attendance    []AttendanceRecord `json:"attendance"`
		FinanceLog    []PaymentRecord    `json:"finance_log"`
		NextStudentID int                `json:"next_student_id"`
		NextTeacherID int                `json:"next_teacher_id"`
		NextCourseID  int                `json:"next_course_id"`
	}

	// Persister loads and saves the whole Document at once.
	// Load returns ErrNoDocument (possibly wrapped) when nothing was saved yet.
	Persister interface {
		Load() (Document, error)
		Save(doc Document) error
	}

	Options struct {
		SeedDemo bool // seed demo data when no usable document can be loaded
	}

	// RecordStore is the single owner of all school records.
	// Every mutating call saves the whole Document before returning.
	RecordStore struct {
		mu        sync.RWMutex
		doc       Document
		persister Persister
		log       core.Logger
		opts      Options
	}
)

// NewRecordStore loads the persisted Document.
// A missing or unusable document is never fatal: the store falls back to demo or empty data,
// and the first write recreates a valid document.
func NewRecordStore(p Persister, logger core.Logger, opts Options) *RecordStore {
	s := &RecordStore{
		persister: p,
		log:       logger,
		opts:      opts,
	}

	doc, err := p.Load()
	switch {
	case err == nil:
		doc.normalize()
		s.doc = doc
		s.reconcile()
		s.log.Info("records loaded", map[string]interface{}{
			"students": len(doc.Students),
			"teachers": len(doc.Teachers),
			"courses":  len(doc.Courses),
		})
	case errors.Cause(err) == ErrNoDocument:
		s.log.Info("no saved records found, starting fresh")
		s.doc = s.defaultDocument()
	default:
		s.log.Warn("could not load saved records, starting fresh", err)
		s.doc = s.defaultDocument()
	}
	return s
}

func (s *RecordStore) defaultDocument() Document {
	if s.opts.SeedDemo {
		return demoDocument()
	}
	doc := Document{}
	doc.normalize()
	return doc
}

// commit applies fn to a working copy of the Document and saves it.
// The copy only replaces the current state once saved, so a failed fn or save changes nothing.
func (s *RecordStore) commit(op string, fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.doc.clone()
	if err := fn(&work); err != nil {
		return err
	}
	if err := s.persister.Save(work); err != nil {
		s.log.Error("saving records", err, map[string]interface{}{"op": op})
		return errors.Wrapf(err, "%s: saving records", op)
	}
	s.doc = work
	return nil
}

// Snapshot returns a copy of the current Document.
func (s *RecordStore) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.clone()
}

// ResetDemoData replaces every record with the built-in demo data set.
func (s *RecordStore) ResetDemoData() error {
	err := s.commit("reset demo data", func(doc *Document) error {
		*doc = demoDocument()
		return nil
	})
	if err == nil {
		s.log.Info("demo data re-seeded")
	}
	return err
}

// reconcile repairs enrollment lists loaded from disk: ids of missing entities are dropped
// and one-sided enrollments get their other side back.
func (s *RecordStore) reconcile() {
	doc := &s.doc
	for i := range doc.Students {
		st := &doc.Students[i]
		kept := make([]int, 0, len(st.EnrolledCourseIDs))
		for _, cid := range st.EnrolledCourseIDs {
			c := doc.course(cid)
			if c == nil {
				s.log.Warn("dropping enrollment in missing course", map[string]interface{}{"student_id": st.ID, "course_id": cid})
				continue
			}
			if containsID(kept, cid) {
				continue
			}
			kept = append(kept, cid)
			if !c.HasStudent(st.ID) {
				s.log.Warn("restoring course side of enrollment", map[string]interface{}{"student_id": st.ID, "course_id": cid})
				c.EnrolledStudentIDs = append(c.EnrolledStudentIDs, st.ID)
			}
		}
		st.EnrolledCourseIDs = kept
	}
	for i := range doc.Courses {
		c := &doc.Courses[i]
		kept := make([]int, 0, len(c.EnrolledStudentIDs))
		for _, sid := range c.EnrolledStudentIDs {
			st := doc.student(sid)
			if st == nil {
				s.log.Warn("dropping enrollment of missing student", map[string]interface{}{"student_id": sid, "course_id": c.ID})
				continue
			}
			if containsID(kept, sid) {
				continue
			}
			kept = append(kept, sid)
			if !st.IsEnrolled(c.ID) {
				s.log.Warn("restoring student side of enrollment", map[string]interface{}{"student_id": sid, "course_id": c.ID})
				st.EnrolledCourseIDs = append(st.EnrolledCourseIDs, c.ID)
			}
		}
		c.EnrolledStudentIDs = kept
	}
}

// normalize replaces nil collections with empty ones and fixes the next-id counters,
// which never go below (max existing id + 1).
func (d *Document) normalize() {
	if d.Students == nil {
		d.Students = []Student{}
	}
	if d.Teachers == nil {
		d.Teachers = []Teacher{}
	}
	if d.Courses == nil {
		d.Courses = []Course{}
	}
	if d.Attendance == nil {
		d.Attendance = []AttendanceRecord{}
	}
	if d.FinanceLog == nil {
		d.FinanceLog = []PaymentRecord{}
	}

	var maxStudent, maxTeacher, maxCourse int
	for i := range d.Students {
		if d.Students[i].EnrolledCourseIDs == nil {
			d.Students[i].EnrolledCourseIDs = []int{}
		}
		if d.Students[i].ID > maxStudent {
			maxStudent = d.Students[i].ID
		}
	}
	for _, t := range d.Teachers {
		if t.ID > maxTeacher {
			maxTeacher = t.ID
		}
	}
	for i := range d.Courses {
		c := &d.Courses[i]
		if c.EnrolledStudentIDs == nil {
			c.EnrolledStudentIDs = []int{}
		}
		if c.Lessons == nil {
			c.Lessons = []Lesson{}
		}
		if c.ID > maxCourse {
			maxCourse = c.ID
		}
	}
	d.NextStudentID = nextID(d.NextStudentID, maxStudent)
	d.NextTeacherID = nextID(d.NextTeacherID, maxTeacher)
	d.NextCourseID = nextID(d.NextCourseID, maxCourse)
}

func nextID(stored, max int) int {
	if stored > max {
		return stored
	}
	return max + 1
}

func (d Document) clone() Document {
	c := Document{
		Students:      make([]Student, len(d.Students)),
		Teachers:      make([]Teacher, len(d.Teachers)),
		Courses:       make([]Course, len(d.Courses)),
		Attendance:    make([]AttendanceRecord, len(d.Attendance)),
		FinanceLog:    make([]PaymentRecord, len(d.FinanceLog)),
		NextStudentID: d.NextStudentID,
		NextTeacherID: d.NextTeacherID,
		NextCourseID:  d.NextCourseID,
	}
	for i, st := range d.Students {
		c.Students[i] = st.clone()
	}
	copy(c.Teachers, d.Teachers)
	for i, crs := range d.Courses {
		c.Courses[i] = crs.clone()
	}
	copy(c.Attendance, d.Attendance)
	copy(c.FinanceLog, d.FinanceLog)
	return c
}

func (s Student) clone() Student {
	s.EnrolledCourseIDs = append([]int{}, s.EnrolledCourseIDs...)
	return s
}

func (c Course) clone() Course {
	c.EnrolledStudentIDs = append([]int{}, c.EnrolledStudentIDs...)
	c.Lessons = append([]Lesson{}, c.Lessons...)
	return c
}

func (d *Document) student(id int) *Student {
	for i := range d.Students {
		if d.Students[i].ID == id {
			return &d.Students[i]
		}
	}
	return nil
}

func (d *Document) teacher(id int) *Teacher {
	for i := range d.Teachers {
		if d.Teachers[i].ID == id {
			return &d.Teachers[i]
		}
	}
	return nil
}

func (d *Document) course(id int) *Course {
	for i := range d.Courses {
		if d.Courses[i].ID == id {
			return &d.Courses[i]
		}
	}
	return nil
}
