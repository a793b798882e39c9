package school

import (
	"strings"
	"time"

	"github.com/trezcool/msms/core"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// Report kinds
const (
	ReportPayments   = "payments"
	ReportAttendance = "attendance"
)

const unspecifiedMethod = "Unspecified"

var (
	AllStatuses = []string{StatusPresent, StatusLate, StatusAbsent}
	Weekdays    = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

type Student struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	EnrolledCourseIDs []int  `json:"enrolled_course_ids"`
}

func (s Student) IsEnrolled(courseID int) bool {
	return containsID(s.EnrolledCourseIDs, courseID)
}

type Teacher struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Speciality string `json:"speciality"`
}

type Lesson struct {
	LessonID  int    `json:"lesson_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	Room      string `json:"room"`
}

type Course struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Instrument         string   `json:"instrument"`
	TeacherID          int      `json:"teacher_id"`
	EnrolledStudentIDs []int    `json:"enrolled_student_ids"`
	Lessons            []Lesson `json:"lessons"`
}

func (c Course) HasStudent(studentID int) bool {
	return containsID(c.EnrolledStudentIDs, studentID)
}

// HasLessonOn reports whether the course has at least one lesson on day (case-insensitive).
func (c Course) HasLessonOn(day string) bool {
	for _, l := range c.Lessons {
		if strings.EqualFold(l.Day, day) {
			return true
		}
	}
	return false
}

func (c Course) nextLessonID() int {
	var max int
	for _, l := range c.Lessons {
		if l.LessonID > max {
			max = l.LessonID
		}
	}
	return max + 1
}

type AttendanceRecord struct {
	StudentID int       `json:"student_id"`
	CourseID  int       `json:"course_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type PaymentRecord struct {
	StudentID int       `json:"student_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
	Receipt   string    `json:"receipt,omitempty"`
}

// RosterRow is one scheduled lesson on a given day.
type RosterRow struct {
	CourseID   int      `json:"course_id"`
	Course     string   `json:"course"`
	Instrument string   `json:"instrument"`
	Teacher    string   `json:"teacher"`
	LessonID   int      `json:"lesson_id"`
	Day        string   `json:"day"`
	Time       string   `json:"time"`
	Room       string   `json:"room"`
	Students   []string `json:"students"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name  string `json:"name" validate:"notblank"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.ValidateStruct(ns)
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	Name       string `json:"name" validate:"notblank"`
	Email      string `json:"email" validate:"omitempty,email"`
	Speciality string `json:"speciality"`
}

func (nt *NewTeacher) Validate() error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Speciality = core.CleanString(nt.Speciality)
	return core.ValidateStruct(nt)
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name       string `json:"name" validate:"notblank"`
	Instrument string `json:"instrument" validate:"notblank"`
	TeacherID  int    `json:"teacher_id"` // must name an existing Teacher
}

func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Instrument = core.CleanString(nc.Instrument)
	return core.ValidateStruct(nc)
}

// NewRegistration is a front-desk sign-up: a new Student and the instrument they want to learn.
type NewRegistration struct {
	Name       string `json:"name" validate:"notblank"`
	Instrument string `json:"instrument" validate:"notblank"`
}

func (nr *NewRegistration) Validate() error {
	nr.Name = core.CleanString(nr.Name)
	nr.Instrument = core.CleanString(nr.Instrument)
	return core.ValidateStruct(nr)
}

// NewLesson contains information needed to schedule a Lesson in a Course.
type NewLesson struct {
	Day       string `json:"day" validate:"notblank,weekday"`
	StartTime string `json:"start_time" validate:"notblank,clock"`
	Room      string `json:"room" validate:"notblank"`
}

func (nl *NewLesson) Validate() error {
	nl.Day = canonicalDay(nl.Day)
	nl.StartTime = core.CleanString(nl.StartTime)
	nl.Room = core.CleanString(nl.Room)
	if err := core.ValidateStruct(nl); err != nil {
		return err
	}
	nl.StartTime = normalizeClock(nl.StartTime)
	return nil
}

// NewCheckIn records a Student's attendance at a Course.
// A zero Timestamp means now; an empty Status means StatusPresent.
type NewCheckIn struct {
	StudentID int       `json:"student_id"`
	CourseID  int       `json:"course_id"`
	Status    string    `json:"status" validate:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (ci *NewCheckIn) Validate() error {
	ci.Status = core.CleanString(ci.Status, true /* lower */)
	if ci.Status == "" {
		ci.Status = StatusPresent
	}
	return core.ValidateStruct(ci)
}

// NewPayment contains information needed to record a payment.
type NewPayment struct {
	StudentID int     `json:"student_id"`
	Amount    float64 `json:"amount" validate:"finite,gt=0"`
	Method    string  `json:"method"`
}

func (np *NewPayment) Validate() error {
	np.Method = core.CleanString(np.Method)
	if np.Method == "" {
		np.Method = unspecifiedMethod
	}
	return core.ValidateStruct(np)
}

// StudentPatch defines what information may be provided to modify an existing Student.
// nil fields are left untouched.
type StudentPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (p *StudentPatch) IsEmpty() bool { return p.Name == nil && p.Email == nil }

func (p *StudentPatch) Validate() error {
	cleanPtr(p.Name, false)
	cleanPtr(p.Email, true)
	if p.Name != nil && *p.Name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "name cannot be blank"})
	}
	return core.ValidateStruct(p)
}

func (p StudentPatch) apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
}

// TeacherPatch defines what information may be provided to modify an existing Teacher.
// nil fields are left untouched.
type TeacherPatch struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Speciality *string `json:"speciality"`
}

func (p *TeacherPatch) IsEmpty() bool { return p.Name == nil && p.Email == nil && p.Speciality == nil }

func (p *TeacherPatch) Validate() error {
	cleanPtr(p.Name, false)
	cleanPtr(p.Email, true)
	cleanPtr(p.Speciality, false)
	if p.Name != nil && *p.Name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "name cannot be blank"})
	}
	return core.ValidateStruct(p)
}

func (p TeacherPatch) apply(t *Teacher) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Speciality != nil {
		t.Speciality = *p.Speciality
	}
}

// AttendanceFilter selects attendance records; zero fields match everything.
type AttendanceFilter struct {
	StudentID int
	CourseID  int
}

func (f AttendanceFilter) match(r AttendanceRecord) bool {
	return (f.StudentID == 0 || r.StudentID == f.StudentID) &&
		(f.CourseID == 0 || r.CourseID == f.CourseID)
}

func cleanPtr(s *string, lower bool) {
	if s != nil {
		*s = core.CleanString(*s, lower)
	}
}

func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []int, id int) []int {
	out := make([]int, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
