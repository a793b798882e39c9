package school

import "strings"

// AddCourse creates a Course taught by an existing Teacher.
func (s *RecordStore) AddCourse(nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}
	var c Course
	err := s.commit("add course", func(doc *Document) error {
		if doc.teacher(nc.TeacherID) == nil {
			return ErrTeacherNotFound
		}
		c = Course{
			ID:                 doc.NextCourseID,
			Name:               nc.Name,
			Instrument:         nc.Instrument,
			TeacherID:          nc.TeacherID,
			EnrolledStudentIDs: []int{},
			Lessons:            []Lesson{},
		}
		doc.NextCourseID++
		doc.Courses = append(doc.Courses, c)
		return nil
	})
	if err != nil {
		return Course{}, err
	}
	s.log.Info("course added", map[string]interface{}{"id": c.ID, "name": c.Name, "teacher_id": c.TeacherID})
	return c.clone(), nil
}

// AddLesson schedules a Lesson in a Course. Lesson ids start at 1 and follow the course's highest one.
func (s *RecordStore) AddLesson(courseID int, nl NewLesson) (Lesson, error) {
	if err := nl.Validate(); err != nil {
		return Lesson{}, err
	}
	var l Lesson
	err := s.commit("add lesson", func(doc *Document) error {
		c := doc.course(courseID)
		if c == nil {
			return ErrCourseNotFound
		}
		l = Lesson{
			LessonID:  c.nextLessonID(),
			Day:       nl.Day,
			StartTime: nl.StartTime,
			Room:      nl.Room,
		}
		c.Lessons = append(c.Lessons, l)
		return nil
	})
	if err != nil {
		return Lesson{}, err
	}
	s.log.Info("lesson added", map[string]interface{}{"course_id": courseID, "lesson_id": l.LessonID})
	return l, nil
}

// ReassignCourse hands a Course over to another existing Teacher.
func (s *RecordStore) ReassignCourse(courseID, teacherID int) (Course, error) {
	var c Course
	err := s.commit("reassign course", func(doc *Document) error {
		crs := doc.course(courseID)
		if crs == nil {
			return ErrCourseNotFound
		}
		if doc.teacher(teacherID) == nil {
			return ErrTeacherNotFound
		}
		crs.TeacherID = teacherID
		c = *crs
		return nil
	})
	if err != nil {
		return Course{}, err
	}
	s.log.Info("course reassigned", map[string]interface{}{"course_id": courseID, "teacher_id": teacherID})
	return c.clone(), nil
}

func (s *RecordStore) FindCourseByID(id int) (Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := s.doc.course(id); c != nil {
		return c.clone(), nil
	}
	return Course{}, ErrCourseNotFound
}

func (s *RecordStore) Courses() []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Course, 0, len(s.doc.Courses))
	for _, c := range s.doc.Courses {
		all = append(all, c.clone())
	}
	return all
}

// CoursesForTeacher returns the courses taught by a Teacher.
// When day is not blank, only courses with a lesson on that day are kept.
func (s *RecordStore) CoursesForTeacher(teacherID int, day string) []Course {
	return s.filterCourses(day, func(c Course) bool { return c.TeacherID == teacherID })
}

// CoursesForStudent returns the courses a Student is enrolled in.
// When day is not blank, only courses with a lesson on that day are kept.
func (s *RecordStore) CoursesForStudent(studentID int, day string) []Course {
	return s.filterCourses(day, func(c Course) bool { return c.HasStudent(studentID) })
}

func (s *RecordStore) filterCourses(day string, keep func(Course) bool) []Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day = strings.TrimSpace(day)
	found := make([]Course, 0)
	for _, c := range s.doc.Courses {
		if !keep(c) {
			continue
		}
		if day != "" && !c.HasLessonOn(day) {
			continue
		}
		found = append(found, c.clone())
	}
	return found
}

// RosterForDay lists every lesson held on day (case-insensitive), in course then lesson order.
// The teacher name is "?" when the course's teacher no longer exists.
func (s *RecordStore) RosterForDay(day string) []RosterRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day = strings.TrimSpace(day)
	rows := make([]RosterRow, 0)
	for _, c := range s.doc.Courses {
		for _, l := range c.Lessons {
			if !strings.EqualFold(l.Day, day) {
				continue
			}
			tname := "?"
			if t := s.doc.teacher(c.TeacherID); t != nil {
				tname = t.Name
			}
			students := make([]string, 0, len(c.EnrolledStudentIDs))
			for _, sid := range c.EnrolledStudentIDs {
				if st := s.doc.student(sid); st != nil {
					students = append(students, st.Name)
				}
			}
			rows = append(rows, RosterRow{
				CourseID:   c.ID,
				Course:     c.Name,
				Instrument: c.Instrument,
				Teacher:    tname,
				LessonID:   l.LessonID,
				Day:        l.Day,
				Time:       l.StartTime,
				Room:       l.Room,
				Students:   students,
			})
		}
	}
	return rows
}
