package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/msms/core"
	"github.com/trezcool/msms/core/school"
)

type (
	// prompter reads one answer per line. Labels are only printed to a terminal.
	prompter struct {
		scanner     *bufio.Scanner
		out         io.Writer
		interactive bool
	}

	menuItem struct {
		key    string
		label  string
		action func(p *prompter) error
	}
)

func (p *prompter) ask(label string) (string, error) {
	if p.interactive {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return core.CleanString(p.scanner.Text()), nil
}

func (p *prompter) askInt(label string) (int, error) {
	s, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%s must be a number (got %q)", strings.ToLower(label), s)
	}
	return n, nil
}

// askOptionalInt returns 0 for a blank answer.
func (p *prompter) askOptionalInt(label string) (int, error) {
	s, err := p.ask(label)
	if err != nil || s == "" {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%s must be a number (got %q)", strings.ToLower(label), s)
	}
	return n, nil
}

// clearValue is the answer that empties an optional field.
const clearValue = "-"

// askOptional returns nil for a blank answer, meaning "keep the current value",
// and an empty string for clearValue.
func (p *prompter) askOptional(label string) (*string, error) {
	s, err := p.ask(label)
	if err != nil || s == "" {
		return nil, err
	}
	if s == clearValue {
		s = ""
	}
	return &s, nil
}

func (cli *commandLine) menuItems() []menuItem {
	return []menuItem{
		{"1", "Add student", cli.addStudent},
		{"2", "Register student for an instrument", cli.registerStudent},
		{"3", "Add teacher", cli.addTeacher},
		{"4", "Add course", cli.addCourse},
		{"5", "Add lesson to a course", cli.addLesson},
		{"6", "Enroll student in course", cli.enroll},
		{"7", "Unenroll student from course", cli.unenroll},
		{"8", "Front-desk lookup (students and teachers)", cli.lookup},
		{"9", "Update student", cli.updateStudent},
		{"10", "Update teacher", cli.updateTeacher},
		{"11", "Remove student", cli.removeStudent},
		{"12", "Remove teacher", cli.removeTeacher},
		{"13", "Reassign course to another teacher", cli.reassignCourse},
		{"14", "Daily roster", cli.dailyRoster},
		{"15", "Check in", cli.checkIn},
		{"16", "Attendance log", cli.attendanceLog},
		{"17", "Record payment", cli.recordPayment},
		{"18", "Payment history", cli.paymentHistory},
		{"19", "Export report", cli.exportReport},
		{"20", "Teacher schedule", cli.teacherSchedule},
		{"21", "Student schedule", cli.studentSchedule},
		{"22", "Print student ID card", cli.printCard},
		{"23", "List everything", cli.listAll},
	}
}

// menu runs the numbered menu until "q" or end of input. Failed actions are reported and the menu goes on.
func (cli *commandLine) menu() error {
	p := &prompter{
		scanner:     bufio.NewScanner(cli.in),
		out:         cli.out,
		interactive: isTerminalFunc(cli.in),
	}
	items := cli.menuItems()
	byKey := make(map[string]menuItem, len(items))
	for _, it := range items {
		byKey[it.key] = it
	}

	for {
		if p.interactive {
			fmt.Fprintf(cli.out, "\n=== %s ===\n", cli.conf.AppName)
			for _, it := range items {
				fmt.Fprintf(cli.out, "%3s. %s\n", it.key, it.label)
			}
			fmt.Fprintln(cli.out, "  q. Quit")
		}

		choice, err := p.ask("Choose an option")
		if err != nil {
			return nil
		}
		choice = strings.ToLower(choice)
		switch choice {
		case "":
			continue
		case "q", "quit":
			fmt.Fprintln(cli.out, "Goodbye!")
			return nil
		}

		it, ok := byKey[choice]
		if !ok {
			fmt.Fprintf(cli.out, "error: unknown option %q\n", choice)
			continue
		}
		if err := it.action(p); err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Fprintf(cli.out, "error: %s\n", err)
		}
	}
}

func (cli *commandLine) addStudent(p *prompter) error {
	name, err := p.ask("Name")
	if err != nil {
		return err
	}
	email, err := p.ask("Email (optional)")
	if err != nil {
		return err
	}
	st, err := cli.store.AddStudent(school.NewStudent{Name: name, Email: email})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added student #%d %s\n", st.ID, st.Name)
	return nil
}

func (cli *commandLine) registerStudent(p *prompter) error {
	name, err := p.ask("Name")
	if err != nil {
		return err
	}
	instrument, err := p.ask("Instrument")
	if err != nil {
		return err
	}
	st, courseID, err := cli.store.RegisterStudent(name, instrument)
	if err != nil {
		return err
	}
	if courseID == 0 {
		fmt.Fprintf(cli.out, "Registered student #%d %s (no course teaches %s yet)\n", st.ID, st.Name, instrument)
		return nil
	}
	fmt.Fprintf(cli.out, "Registered student #%d %s in course #%d\n", st.ID, st.Name, courseID)
	return nil
}

func (cli *commandLine) addTeacher(p *prompter) error {
	var nt school.NewTeacher
	var err error
	if nt.Name, err = p.ask("Name"); err != nil {
		return err
	}
	if nt.Email, err = p.ask("Email (optional)"); err != nil {
		return err
	}
	if nt.Speciality, err = p.ask("Speciality"); err != nil {
		return err
	}
	t, err := cli.store.AddTeacher(nt)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added teacher #%d %s\n", t.ID, t.Name)
	return nil
}

func (cli *commandLine) addCourse(p *prompter) error {
	var nc school.NewCourse
	var err error
	if nc.Name, err = p.ask("Course name"); err != nil {
		return err
	}
	if nc.Instrument, err = p.ask("Instrument"); err != nil {
		return err
	}
	if nc.TeacherID, err = p.askInt("Teacher ID"); err != nil {
		return err
	}
	c, err := cli.store.AddCourse(nc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added course #%d %s\n", c.ID, c.Name)
	return nil
}

func (cli *commandLine) addLesson(p *prompter) error {
	courseID, err := p.askInt("Course ID")
	if err != nil {
		return err
	}
	var nl school.NewLesson
	if nl.Day, err = p.ask("Day"); err != nil {
		return err
	}
	if nl.StartTime, err = p.ask("Start time (HH:MM)"); err != nil {
		return err
	}
	if nl.Room, err = p.ask("Room"); err != nil {
		return err
	}
	l, err := cli.store.AddLesson(courseID, nl)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added lesson %d: %s %s in %s\n", l.LessonID, l.Day, l.StartTime, l.Room)
	return nil
}

func (cli *commandLine) askStudentAndCourse(p *prompter) (int, int, error) {
	studentID, err := p.askInt("Student ID")
	if err != nil {
		return 0, 0, err
	}
	courseID, err := p.askInt("Course ID")
	if err != nil {
		return 0, 0, err
	}
	return studentID, courseID, nil
}

func (cli *commandLine) enroll(p *prompter) error {
	studentID, courseID, err := cli.askStudentAndCourse(p)
	if err != nil {
		return err
	}
	if err := cli.store.EnrollStudentInCourse(studentID, courseID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Enrolled student #%d in course #%d\n", studentID, courseID)
	return nil
}

func (cli *commandLine) unenroll(p *prompter) error {
	studentID, courseID, err := cli.askStudentAndCourse(p)
	if err != nil {
		return err
	}
	if err := cli.store.UnenrollStudent(studentID, courseID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Unenrolled student #%d from course #%d\n", studentID, courseID)
	return nil
}

// lookup shows an exact student name match first, then every student and teacher matching term.
func (cli *commandLine) lookup(p *prompter) error {
	term, err := p.ask("Name contains")
	if err != nil {
		return err
	}
	if st, err := cli.store.FindStudentByName(term); err == nil {
		fmt.Fprintf(cli.out, "Exact match: student #%d %s\n", st.ID, st.Name)
	}

	fmt.Fprintln(cli.out, "Students:")
	found := cli.store.FindStudents(term)
	printStudents(cli.out, found)
	fmt.Fprintln(cli.out, "Teachers:")
	printTeachers(cli.out, cli.store.FindTeachers(term))
	if len(found) == 0 {
		if suggestions := cli.store.SuggestStudents(term); len(suggestions) > 0 {
			names := make([]string, 0, len(suggestions))
			for _, st := range suggestions {
				names = append(names, st.Name)
			}
			fmt.Fprintf(cli.out, "Did you mean: %s?\n", strings.Join(names, ", "))
		}
	}
	return nil
}

func (cli *commandLine) updateStudent(p *prompter) error {
	id, err := p.askInt("Student ID")
	if err != nil {
		return err
	}
	var patch school.StudentPatch
	if patch.Name, err = p.askOptional("New name (blank to keep)"); err != nil {
		return err
	}
	if patch.Email, err = p.askOptional("New email (blank to keep, - to clear)"); err != nil {
		return err
	}
	st, err := cli.store.UpdateStudent(id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Updated student #%d %s\n", st.ID, st.Name)
	return nil
}

func (cli *commandLine) updateTeacher(p *prompter) error {
	id, err := p.askInt("Teacher ID")
	if err != nil {
		return err
	}
	var patch school.TeacherPatch
	if patch.Name, err = p.askOptional("New name (blank to keep)"); err != nil {
		return err
	}
	if patch.Email, err = p.askOptional("New email (blank to keep, - to clear)"); err != nil {
		return err
	}
	if patch.Speciality, err = p.askOptional("New speciality (blank to keep)"); err != nil {
		return err
	}
	t, err := cli.store.UpdateTeacher(id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Updated teacher #%d %s\n", t.ID, t.Name)
	return nil
}

func (cli *commandLine) removeStudent(p *prompter) error {
	id, err := p.askInt("Student ID")
	if err != nil {
		return err
	}
	if err := cli.store.RemoveStudent(id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Removed student #%d\n", id)
	return nil
}

func (cli *commandLine) removeTeacher(p *prompter) error {
	id, err := p.askInt("Teacher ID")
	if err != nil {
		return err
	}
	if err := cli.store.RemoveTeacher(id); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Removed teacher #%d\n", id)
	return nil
}

func (cli *commandLine) reassignCourse(p *prompter) error {
	courseID, err := p.askInt("Course ID")
	if err != nil {
		return err
	}
	teacherID, err := p.askInt("New teacher ID")
	if err != nil {
		return err
	}
	c, err := cli.store.ReassignCourse(courseID, teacherID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Course #%d is now taught by teacher #%d\n", c.ID, c.TeacherID)
	return nil
}

func (cli *commandLine) dailyRoster(p *prompter) error {
	day, err := p.ask("Day")
	if err != nil {
		return err
	}
	printRoster(cli.out, day, cli.store.RosterForDay(day))
	return nil
}

func (cli *commandLine) checkIn(p *prompter) error {
	studentID, courseID, err := cli.askStudentAndCourse(p)
	if err != nil {
		return err
	}
	status, err := p.ask("Status (present, late, absent; blank for present)")
	if err != nil {
		return err
	}
	rec, err := cli.store.CheckIn(school.NewCheckIn{StudentID: studentID, CourseID: courseID, Status: status})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Checked in student #%d to course #%d (%s)\n", rec.StudentID, rec.CourseID, rec.Status)
	return nil
}

func (cli *commandLine) attendanceLog(p *prompter) error {
	var filter school.AttendanceFilter
	var err error
	if filter.StudentID, err = p.askOptionalInt("Student ID (blank for all)"); err != nil {
		return err
	}
	if filter.CourseID, err = p.askOptionalInt("Course ID (blank for all)"); err != nil {
		return err
	}
	printAttendance(cli.out, cli.store.ListAttendance(filter))
	return nil
}

func (cli *commandLine) recordPayment(p *prompter) error {
	studentID, err := p.askInt("Student ID")
	if err != nil {
		return err
	}
	s, err := p.ask("Amount")
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Errorf("amount must be a number (got %q)", s)
	}
	method, err := p.ask("Method (optional)")
	if err != nil {
		return err
	}
	pay, err := cli.store.RecordPayment(school.NewPayment{StudentID: studentID, Amount: amount, Method: method})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Recorded %.2f from student #%d (receipt %s)\n", pay.Amount, pay.StudentID, pay.Receipt)
	return nil
}

func (cli *commandLine) paymentHistory(p *prompter) error {
	studentID, err := p.askInt("Student ID")
	if err != nil {
		return err
	}
	printPayments(cli.out, cli.store.PaymentHistory(studentID))
	return nil
}

func (cli *commandLine) exportReport(p *prompter) error {
	kind, err := p.ask("Report (payments or attendance)")
	if err != nil {
		return err
	}
	path, err := p.ask("Output file (blank for default)")
	if err != nil {
		return err
	}
	return cli.export(kind, path)
}

func (cli *commandLine) teacherSchedule(p *prompter) error {
	id, err := p.askInt("Teacher ID")
	if err != nil {
		return err
	}
	if _, err := cli.store.FindTeacherByID(id); err != nil {
		return err
	}
	day, err := p.ask("Day (blank for the whole week)")
	if err != nil {
		return err
	}
	printCourses(cli.out, cli.store.CoursesForTeacher(id, day))
	return nil
}

func (cli *commandLine) studentSchedule(p *prompter) error {
	id, err := p.askInt("Student ID")
	if err != nil {
		return err
	}
	if _, err := cli.store.FindStudentByID(id); err != nil {
		return err
	}
	day, err := p.ask("Day (blank for the whole week)")
	if err != nil {
		return err
	}
	printCourses(cli.out, cli.store.CoursesForStudent(id, day))
	return nil
}

func (cli *commandLine) printCard(p *prompter) error {
	id, err := p.askInt("Student ID")
	if err != nil {
		return err
	}
	card, err := cli.store.StudentCard(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cli.conf.ReportDir, 0o755); err != nil {
		return errors.Wrap(err, "creating report directory")
	}
	path := filepath.Join(cli.conf.ReportDir, school.CardFileName(id))
	if err := os.WriteFile(path, []byte(card), 0o644); err != nil {
		return errors.Wrap(err, "writing student card")
	}
	fmt.Fprintf(cli.out, "Printed student card to %s\n", path)
	return nil
}

func (cli *commandLine) listAll(*prompter) error {
	fmt.Fprintln(cli.out, "Students:")
	printStudents(cli.out, cli.store.Students())
	fmt.Fprintln(cli.out, "Teachers:")
	printTeachers(cli.out, cli.store.Teachers())
	fmt.Fprintln(cli.out, "Courses:")
	printCourses(cli.out, cli.store.Courses())
	return nil
}
