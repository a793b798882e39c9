package school

// EnrollStudentInCourse adds the Student to the Course and the Course to the Student in one step.
func (s *RecordStore) EnrollStudentInCourse(studentID, courseID int) error {
	err := s.commit("enroll student", func(doc *Document) error {
		st := doc.student(studentID)
		c := doc.course(courseID)
		if st == nil || c == nil {
			return ErrInvalidStudentOrCourse
		}
		if c.HasStudent(studentID) || st.IsEnrolled(courseID) {
			return ErrAlreadyEnrolled
		}
		c.EnrolledStudentIDs = append(c.EnrolledStudentIDs, studentID)
		st.EnrolledCourseIDs = append(st.EnrolledCourseIDs, courseID)
		return nil
	})
	if err == nil {
		s.log.Info("student enrolled", map[string]interface{}{"student_id": studentID, "course_id": courseID})
	}
	return err
}

// UnenrollStudent removes both sides of an enrollment.
func (s *RecordStore) UnenrollStudent(studentID, courseID int) error {
	err := s.commit("unenroll student", func(doc *Document) error {
		st := doc.student(studentID)
		c := doc.course(courseID)
		if st == nil || c == nil {
			return ErrInvalidStudentOrCourse
		}
		if !c.HasStudent(studentID) && !st.IsEnrolled(courseID) {
			return ErrNotEnrolled
		}
		c.EnrolledStudentIDs = removeID(c.EnrolledStudentIDs, studentID)
		st.EnrolledCourseIDs = removeID(st.EnrolledCourseIDs, courseID)
		return nil
	})
	if err == nil {
		s.log.Info("student unenrolled", map[string]interface{}{"student_id": studentID, "course_id": courseID})
	}
	return err
}
