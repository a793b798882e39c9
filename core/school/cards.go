package school

import (
	"fmt"
	"strconv"
	"strings"
)

const cardRule = "========================"

// CardFileName is the file name a Student's ID card is printed to.
func CardFileName(studentID int) string {
	return strconv.Itoa(studentID) + "_card.txt"
}

// StudentCard renders the text ID badge of a Student, listing the courses they are enrolled in.
func (s *RecordStore) StudentCard(studentID int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.doc.student(studentID)
	if st == nil {
		return "", ErrStudentNotFound
	}
	courses := make([]string, 0, len(st.EnrolledCourseIDs))
	for _, cid := range st.EnrolledCourseIDs {
		if c := s.doc.course(cid); c != nil {
			courses = append(courses, c.Name)
		}
	}

	var b strings.Builder
	b.WriteString(cardRule + "\n")
	b.WriteString("  MUSIC SCHOOL ID BADGE\n")
	b.WriteString(cardRule + "\n")
	fmt.Fprintf(&b, "ID: %d\n", st.ID)
	fmt.Fprintf(&b, "Name: %s\n", st.Name)
	fmt.Fprintf(&b, "Enrolled In: %s\n", strings.Join(courses, ", "))
	return b.String(), nil
}
