package school

// demoDocument returns the built-in demo data set: three students, three teachers
// and three courses, with Alice in Piano 101 and Liam in Guitar Basics.
func demoDocument() Document {
	doc := Document{
		Students: []Student{
			{ID: 1, Name: "Alice Johnson", EnrolledCourseIDs: []int{101}},
			{ID: 2, Name: "Liam Patel", EnrolledCourseIDs: []int{102}},
			{ID: 3, Name: "Maya Singh", EnrolledCourseIDs: []int{}},
		},
		Teachers: []Teacher{
			{ID: 1, Name: "Mr. Taylor", Speciality: "Piano"},
			{ID: 2, Name: "Ms. Chen", Speciality: "Guitar"},
			{ID: 3, Name: "Dr. Rossi", Speciality: "Violin"},
		},
		Courses: []Course{
			{
				ID: 101, Name: "Piano 101", Instrument: "Piano", TeacherID: 1,
				EnrolledStudentIDs: []int{1},
				Lessons: []Lesson{
					{LessonID: 1, Day: "Monday", StartTime: "16:00", Room: "Studio A"},
					{LessonID: 2, Day: "Wednesday", StartTime: "17:00", Room: "Studio A"},
				},
			},
			{
				ID: 102, Name: "Guitar Basics", Instrument: "Guitar", TeacherID: 2,
				EnrolledStudentIDs: []int{2},
				Lessons: []Lesson{
					{LessonID: 1, Day: "Monday", StartTime: "16:30", Room: "Room 2"},
					{LessonID: 2, Day: "Tuesday", StartTime: "15:30", Room: "Room 2"},
				},
			},
			{
				ID: 201, Name: "Violin Ensemble", Instrument: "Violin", TeacherID: 3,
				EnrolledStudentIDs: []int{},
				Lessons: []Lesson{
					{LessonID: 1, Day: "Thursday", StartTime: "18:00", Room: "Hall"},
				},
			},
		},
	}
	doc.normalize()
	return doc
}
