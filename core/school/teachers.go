package school

import "github.com/trezcool/msms/core"

func (s *RecordStore) AddTeacher(nt NewTeacher) (Teacher, error) {
	if err := nt.Validate(); err != nil {
		return Teacher{}, err
	}
	var t Teacher
	err := s.commit("add teacher", func(doc *Document) error {
		t = Teacher{
			ID:         doc.NextTeacherID,
			Name:       nt.Name,
			Email:      nt.Email,
			Speciality: nt.Speciality,
		}
		doc.NextTeacherID++
		doc.Teachers = append(doc.Teachers, t)
		return nil
	})
	if err != nil {
		return Teacher{}, err
	}
	s.log.Info("teacher added", map[string]interface{}{"id": t.ID, "name": t.Name})
	return t, nil
}

func (s *RecordStore) UpdateTeacher(id int, patch TeacherPatch) (Teacher, error) {
	if patch.IsEmpty() {
		return Teacher{}, ErrEmptyPatch
	}
	if err := patch.Validate(); err != nil {
		return Teacher{}, err
	}
	var t Teacher
	err := s.commit("update teacher", func(doc *Document) error {
		orig := doc.teacher(id)
		if orig == nil {
			return ErrTeacherNotFound
		}
		patch.apply(orig)
		t = *orig
		return nil
	})
	if err != nil {
		return Teacher{}, err
	}
	s.log.Info("teacher updated", map[string]interface{}{"id": id})
	return t, nil
}

// RemoveTeacher deletes a Teacher. It fails with ErrTeacherAssigned while any course
// still references them; reassign those courses first.
func (s *RecordStore) RemoveTeacher(id int) error {
	err := s.commit("remove teacher", func(doc *Document) error {
		idx := -1
		for i, t := range doc.Teachers {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrTeacherNotFound
		}
		for _, c := range doc.Courses {
			if c.TeacherID == id {
				return ErrTeacherAssigned
			}
		}
		doc.Teachers = append(doc.Teachers[:idx], doc.Teachers[idx+1:]...)
		return nil
	})
	if err == nil {
		s.log.Info("teacher removed", map[string]interface{}{"id": id})
	}
	return err
}

func (s *RecordStore) FindTeacherByID(id int) (Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t := s.doc.teacher(id); t != nil {
		return *t, nil
	}
	return Teacher{}, ErrTeacherNotFound
}

// FindTeachers does a case-insensitive substring match on the Teachers' names and specialities.
func (s *RecordStore) FindTeachers(term string) []Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = core.CleanString(term)
	found := make([]Teacher, 0)
	for _, t := range s.doc.Teachers {
		if core.ContainsFold(t.Name, term) || core.ContainsFold(t.Speciality, term) {
			found = append(found, t)
		}
	}
	return found
}

func (s *RecordStore) Teachers() []Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Teacher{}, s.doc.Teachers...)
}
