package school

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/msms/core"
)

// minSuggestRatio is the similarity a name needs to be suggested for a search term.
const minSuggestRatio = 0.6

func (s *RecordStore) AddStudent(ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	var st Student
	err := s.commit("add student", func(doc *Document) error {
		st = Student{
			ID:                doc.NextStudentID,
			Name:              ns.Name,
			Email:             ns.Email,
			EnrolledCourseIDs: []int{},
		}
		doc.NextStudentID++
		doc.Students = append(doc.Students, st)
		return nil
	})
	if err != nil {
		return Student{}, err
	}
	s.log.Info("student added", map[string]interface{}{"id": st.ID, "name": st.Name})
	return st.clone(), nil
}

// RegisterStudent is the front-desk registration: it adds a new Student, refusing duplicate names,
// and enrolls them in the first course teaching instrument, if any.
// It returns the created Student and the id of the course enrolled in (0 if none).
func (s *RecordStore) RegisterStudent(name, instrument string) (Student, int, error) {
	nr := NewRegistration{Name: name, Instrument: instrument}
	if err := nr.Validate(); err != nil {
		return Student{}, 0, err
	}
	name, instrument = nr.Name, nr.Instrument

	var (
		st       Student
		courseID int
	)
	err := s.commit("register student", func(doc *Document) error {
		for _, other := range doc.Students {
			if strings.EqualFold(other.Name, name) {
				return ErrStudentExists
			}
		}
		st = Student{ID: doc.NextStudentID, Name: name, EnrolledCourseIDs: []int{}}
		doc.NextStudentID++
		for i := range doc.Courses {
			if c := &doc.Courses[i]; strings.EqualFold(c.Instrument, instrument) {
				c.EnrolledStudentIDs = append(c.EnrolledStudentIDs, st.ID)
				st.EnrolledCourseIDs = append(st.EnrolledCourseIDs, c.ID)
				courseID = c.ID
				break
			}
		}
		doc.Students = append(doc.Students, st)
		return nil
	})
	if err != nil {
		return Student{}, 0, err
	}
	s.log.Info("student registered", map[string]interface{}{"id": st.ID, "instrument": instrument, "course_id": courseID})
	return st.clone(), courseID, nil
}

func (s *RecordStore) UpdateStudent(id int, patch StudentPatch) (Student, error) {
	if patch.IsEmpty() {
		return Student{}, ErrEmptyPatch
	}
	if err := patch.Validate(); err != nil {
		return Student{}, err
	}
	var st Student
	err := s.commit("update student", func(doc *Document) error {
		orig := doc.student(id)
		if orig == nil {
			return ErrStudentNotFound
		}
		patch.apply(orig)
		st = *orig
		return nil
	})
	if err != nil {
		return Student{}, err
	}
	s.log.Info("student updated", map[string]interface{}{"id": id})
	return st.clone(), nil
}

// RemoveStudent deletes a Student and clears them from every course's enrollment list.
// Their attendance and payment history is kept.
func (s *RecordStore) RemoveStudent(id int) error {
	err := s.commit("remove student", func(doc *Document) error {
		idx := -1
		for i, st := range doc.Students {
			if st.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrStudentNotFound
		}
		doc.Students = append(doc.Students[:idx], doc.Students[idx+1:]...)
		for i := range doc.Courses {
			doc.Courses[i].EnrolledStudentIDs = removeID(doc.Courses[i].EnrolledStudentIDs, id)
		}
		return nil
	})
	if err == nil {
		s.log.Info("student removed", map[string]interface{}{"id": id})
	}
	return err
}

func (s *RecordStore) FindStudentByID(id int) (Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st := s.doc.student(id); st != nil {
		return st.clone(), nil
	}
	return Student{}, ErrStudentNotFound
}

// FindStudentByName does an exact, case-insensitive match on the Student's name.
func (s *RecordStore) FindStudentByName(name string) (Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = core.CleanString(name)
	if name != "" {
		for _, st := range s.doc.Students {
			if strings.EqualFold(st.Name, name) {
				return st.clone(), nil
			}
		}
	}
	return Student{}, ErrStudentNotFound
}

// FindStudents does a case-insensitive substring match on the Students' names.
func (s *RecordStore) FindStudents(term string) []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = core.CleanString(term)
	found := make([]Student, 0)
	for _, st := range s.doc.Students {
		if core.ContainsFold(st.Name, term) {
			found = append(found, st.clone())
		}
	}
	return found
}

// SuggestStudents returns the Students whose name looks like term, most similar first.
func (s *RecordStore) SuggestStudents(term string) []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		st    Student
		ratio float64
	}
	term = core.CleanString(term, true /* lower */)
	matches := make([]scored, 0)
	if term == "" {
		return []Student{}
	}
	for _, st := range s.doc.Students {
		if r := similarity(term, strings.ToLower(st.Name)); r >= minSuggestRatio {
			matches = append(matches, scored{st.clone(), r})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })

	found := make([]Student, 0, len(matches))
	for _, m := range matches {
		found = append(found, m.st)
	}
	return found
}

func (s *RecordStore) Students() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Student, 0, len(s.doc.Students))
	for _, st := range s.doc.Students {
		all = append(all, st.clone())
	}
	return all
}

// similarity compares term against name, or against its best-matching word.
func similarity(term, name string) float64 {
	ratio := func(a, b string) float64 {
		return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
	}
	best := ratio(term, name)
	for _, word := range strings.Fields(name) {
		if r := ratio(term, word); r > best {
			best = r
		}
	}
	return best
}
