package school

import "time"

// CheckIn appends an AttendanceRecord for a Student enrolled in the Course.
// Check-ins are not deduplicated: a student may check in several times a day.
func (s *RecordStore) CheckIn(ci NewCheckIn) (AttendanceRecord, error) {
	if err := ci.Validate(); err != nil {
		return AttendanceRecord{}, err
	}
	ts := ci.Timestamp
	if ts.IsZero() {
		ts = nowFunc()
	}

	rec := AttendanceRecord{
		StudentID: ci.StudentID,
		CourseID:  ci.CourseID,
		Timestamp: ts.UTC().Truncate(time.Second),
		Status:    ci.Status,
	}
	err := s.commit("check in", func(doc *Document) error {
		st := doc.student(ci.StudentID)
		c := doc.course(ci.CourseID)
		if st == nil || c == nil {
			return ErrInvalidStudentOrCourse
		}
		if !c.HasStudent(ci.StudentID) {
			return ErrNotEnrolled
		}
		doc.Attendance = append(doc.Attendance, rec)
		return nil
	})
	if err != nil {
		s.log.Warn("check-in refused", err, map[string]interface{}{"student_id": ci.StudentID, "course_id": ci.CourseID})
		return AttendanceRecord{}, err
	}
	s.log.Info("check-in recorded", map[string]interface{}{"student_id": rec.StudentID, "course_id": rec.CourseID, "status": rec.Status})
	return rec, nil
}

// ListAttendance returns the attendance log entries matching filter, oldest first.
func (s *RecordStore) ListAttendance(filter AttendanceFilter) []AttendanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]AttendanceRecord, 0)
	for _, r := range s.doc.Attendance {
		if filter.match(r) {
			found = append(found, r)
		}
	}
	return found
}
