package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/trezcool/msms/core/school"
)

const timestampLayout = "2006-01-02 15:04:05"

func printStudents(w io.Writer, students []school.Student) {
	if len(students) == 0 {
		fmt.Fprintln(w, "No students found.")
		return
	}
	for _, st := range students {
		fmt.Fprintf(w, "#%-4d %-24s %-24s courses: %s\n", st.ID, st.Name, st.Email, joinIDs(st.EnrolledCourseIDs))
	}
}

func printTeachers(w io.Writer, teachers []school.Teacher) {
	if len(teachers) == 0 {
		fmt.Fprintln(w, "No teachers found.")
		return
	}
	for _, t := range teachers {
		fmt.Fprintf(w, "#%-4d %-24s %-12s %s\n", t.ID, t.Name, t.Speciality, t.Email)
	}
}

func printCourses(w io.Writer, courses []school.Course) {
	if len(courses) == 0 {
		fmt.Fprintln(w, "No courses found.")
		return
	}
	for _, c := range courses {
		fmt.Fprintf(w, "#%-4d %-20s %-10s teacher #%d, students: %s\n", c.ID, c.Name, c.Instrument, c.TeacherID, joinIDs(c.EnrolledStudentIDs))
		for _, l := range c.Lessons {
			fmt.Fprintf(w, "      lesson %d: %s %s in %s\n", l.LessonID, l.Day, l.StartTime, l.Room)
		}
	}
}

func printRoster(w io.Writer, day string, rows []school.RosterRow) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No lessons on %s.\n", strings.TrimSpace(day))
		return
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s %-5s %-20s %-8s %-10s %-12s %s\n", r.Day, r.Time, r.Course, r.Instrument, r.Room, r.Teacher, strings.Join(r.Students, ", "))
	}
}

func printAttendance(w io.Writer, records []school.AttendanceRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No attendance records.")
		return
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s student #%d course #%d %s\n", r.Timestamp.Format(timestampLayout), r.StudentID, r.CourseID, r.Status)
	}
}

func printPayments(w io.Writer, payments []school.PaymentRecord) {
	if len(payments) == 0 {
		fmt.Fprintln(w, "No payments recorded.")
		return
	}
	for _, p := range payments {
		fmt.Fprintf(w, "%s %10.2f %-12s %s\n", p.Timestamp.UTC().Format(timestampLayout), p.Amount, p.Method, p.Receipt)
	}
}

func joinIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return strings.Join(s, ", ")
}
