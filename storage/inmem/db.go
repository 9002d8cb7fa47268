// Package inmem provides in-memory repositories used in tests and local
// development without a MongoDB deployment.
package inmem

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
	"github.com/trezcool/shule/core/user"
)

type (
	DB struct {
		user       *userTable
		teacher    *teacherTable
		student    *studentTable
		class      *classTable
		subject    *subjectTable
		exam       *examTable
		attendance *attendanceTable
	}

	userTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*user.User
	}

	teacherTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*teacher.Teacher
	}

	studentTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*student.Student
	}

	classTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*class.Class
	}

	subjectTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*subject.Subject
	}

	examTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*exam.Exam
	}

	attendanceTable struct {
		sync.RWMutex
		table map[primitive.ObjectID]*attendance.Attendance
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[primitive.ObjectID]*user.User)},
		teacher:    &teacherTable{table: make(map[primitive.ObjectID]*teacher.Teacher)},
		student:    &studentTable{table: make(map[primitive.ObjectID]*student.Student)},
		class:      &classTable{table: make(map[primitive.ObjectID]*class.Class)},
		subject:    &subjectTable{table: make(map[primitive.ObjectID]*subject.Subject)},
		exam:       &examTable{table: make(map[primitive.ObjectID]*exam.Exam)},
		attendance: &attendanceTable{table: make(map[primitive.ObjectID]*attendance.Attendance)},
	}
	return db, nil
}
