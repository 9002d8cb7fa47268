package attendance

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("attendance record not found")
	errDuplicateEntry = errors.New("duplicate attendance entry for student")
)

type (
	Repository interface {
		CreateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		// QueryAttendanceByClass returns the class's sessions, most recent date first.
		QueryAttendanceByClass(ctx context.Context, classID primitive.ObjectID) ([]Attendance, error)
	}

	Service struct {
		repo     Repository
		classes  class.Repository
		students student.Repository
	}
)

func NewService(repo Repository, classes class.Repository, students student.Repository) *Service {
	return &Service{repo: repo, classes: classes, students: students}
}

// Create records an attendance session for a class: the class and every
// referenced student must exist, one entry per student per session.
func (svc *Service) Create(ctx context.Context, na NewAttendance) (Attendance, error) {
	classID, err := primitive.ObjectIDFromHex(na.ClassID)
	if err != nil {
		return Attendance{}, core.NewValidationError(err, core.FieldError{Field: "class_id", Error: "invalid id"})
	}
	if _, err := svc.classes.GetClassByID(ctx, classID); err != nil {
		return Attendance{}, err
	}

	seen := make(map[primitive.ObjectID]bool, len(na.Students))
	entries := make([]Entry, 0, len(na.Students))
	for _, e := range na.Students {
		studentID, err := primitive.ObjectIDFromHex(e.StudentID)
		if err != nil {
			return Attendance{}, core.NewValidationError(err, core.FieldError{Field: "student_id", Error: "invalid id"})
		}
		if _, err := svc.students.GetStudentByID(ctx, studentID); err != nil {
			return Attendance{}, err
		}
		if seen[studentID] {
			return Attendance{}, core.NewValidationError(errDuplicateEntry)
		}
		seen[studentID] = true
		entries = append(entries, Entry{StudentID: studentID, Status: e.Status})
	}

	now := time.Now().UTC()
	att := Attendance{
		ClassID:   classID,
		Date:      now,
		Students:  entries,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if na.Date != nil {
		att.Date = na.Date.UTC()
	}
	return svc.repo.CreateAttendance(ctx, att)
}

func (svc *Service) QueryByClass(ctx context.Context, classID primitive.ObjectID) ([]Attendance, error) {
	return svc.repo.QueryAttendanceByClass(ctx, classID)
}
