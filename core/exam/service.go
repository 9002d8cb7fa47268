package exam

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
)

var (
	// errors
	ErrNotFound          = core.NewNotFoundError("exam not found")
	ErrNoExams           = core.NewNotFoundError("no exams found")
	ErrStudentAmbiguous  = core.NewAmbiguousMatchError("several students match this name; use an id")
	ErrClassAmbiguous    = core.NewAmbiguousMatchError("several classes match this name; use an id")
	ErrStudentNotInClass = core.NewValidationError(errors.New("student does not belong to the specified class"))
)

type (
	Repository interface {
		CreateExam(ctx context.Context, exm Exam) (Exam, error)
		GetExamByID(ctx context.Context, id primitive.ObjectID) (Exam, error)
		// QueryExamsByStudent returns the student's exams, most recent date first.
		QueryExamsByStudent(ctx context.Context, studentID primitive.ObjectID) ([]Exam, error)
		// QueryExamsByClass returns the class's exams, most recent date first.
		QueryExamsByClass(ctx context.Context, classID primitive.ObjectID) ([]Exam, error)
		UpdateExam(ctx context.Context, exm Exam) (Exam, error)
		DeleteExam(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		classes  class.Repository
		subjects subject.Repository
	}
)

func NewService(repo Repository, students student.Repository, classes class.Repository, subjects subject.Repository) *Service {
	return &Service{repo: repo, students: students, classes: classes, subjects: subjects}
}

// resolveStudent looks a student up by exact id when the identifier parses as
// one, otherwise by case-insensitive partial name. A name matching several
// students is rejected rather than silently picking the first.
func (svc *Service) resolveStudent(ctx context.Context, identifier string) (student.Student, error) {
	if id, err := primitive.ObjectIDFromHex(identifier); err == nil {
		return svc.students.GetStudentByID(ctx, id)
	}
	matches, err := svc.students.SearchStudentsByName(ctx, identifier)
	if err != nil {
		return student.Student{}, err
	}
	switch len(matches) {
	case 0:
		return student.Student{}, student.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return student.Student{}, ErrStudentAmbiguous
	}
}

// resolveClass mirrors resolveStudent for classes.
func (svc *Service) resolveClass(ctx context.Context, identifier string) (class.Class, error) {
	if id, err := primitive.ObjectIDFromHex(identifier); err == nil {
		return svc.classes.GetClassByID(ctx, id)
	}
	matches, err := svc.classes.SearchClassesByName(ctx, identifier)
	if err != nil {
		return class.Class{}, err
	}
	switch len(matches) {
	case 0:
		return class.Class{}, class.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return class.Class{}, ErrClassAmbiguous
	}
}

// Create records an exam taken by a student, graded by the authenticated
// teacher. The resolved student must belong to the resolved class.
// Marks above the total are allowed (bonus marks).
func (svc *Service) Create(ctx context.Context, teacherID primitive.ObjectID, ne NewExam) (Exam, error) {
	std, err := svc.resolveStudent(ctx, ne.StudentIdentifier)
	if err != nil {
		return Exam{}, err
	}
	cls, err := svc.resolveClass(ctx, ne.ClassIdentifier)
	if err != nil {
		return Exam{}, err
	}
	subjectID, err := primitive.ObjectIDFromHex(ne.SubjectID)
	if err != nil {
		return Exam{}, core.NewValidationError(err, core.FieldError{Field: "subject_id", Error: "invalid id"})
	}
	if _, err := svc.subjects.GetSubjectByID(ctx, subjectID); err != nil {
		return Exam{}, err
	}

	if !std.ClassID.IsZero() && std.ClassID != cls.ID {
		return Exam{}, ErrStudentNotInClass
	}

	now := time.Now().UTC()
	exm := Exam{
		StudentID: std.ID,
		ClassID:   cls.ID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		Marks:     *ne.Marks,
		Total:     *ne.Total,
		ExamType:  ne.ExamType,
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ne.Date != nil {
		exm.Date = ne.Date.UTC()
	}
	return svc.repo.CreateExam(ctx, exm)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID primitive.ObjectID) ([]Exam, error) {
	exams, err := svc.repo.QueryExamsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, ErrNoExams
	}
	return exams, nil
}

func (svc *Service) QueryByClass(ctx context.Context, classID primitive.ObjectID) ([]Exam, error) {
	exams, err := svc.repo.QueryExamsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, ErrNoExams
	}
	return exams, nil
}

func (svc *Service) Update(ctx context.Context, id primitive.ObjectID, ue UpdateExam) (Exam, error) {
	exm, err := svc.repo.GetExamByID(ctx, id)
	if err != nil {
		return Exam{}, err
	}

	if ue.SubjectID != "" {
		subjectID, err := primitive.ObjectIDFromHex(ue.SubjectID)
		if err != nil {
			return Exam{}, core.NewValidationError(err, core.FieldError{Field: "subject_id", Error: "invalid id"})
		}
		if _, err := svc.subjects.GetSubjectByID(ctx, subjectID); err != nil {
			return Exam{}, err
		}
		exm.SubjectID = subjectID
	}
	if ue.Marks != nil {
		exm.Marks = *ue.Marks
	}
	if ue.Total != nil {
		exm.Total = *ue.Total
	}
	if ue.ExamType != "" {
		exm.ExamType = ue.ExamType
	}
	if ue.Date != nil {
		exm.Date = ue.Date.UTC()
	}
	exm.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateExam(ctx, exm)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := svc.repo.GetExamByID(ctx, id); err != nil {
		return err
	}
	return svc.repo.DeleteExam(ctx, id)
}
