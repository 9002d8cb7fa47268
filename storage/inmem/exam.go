package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core/exam"
)

type examRepository struct {
	db *examTable
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) CreateExam(_ context.Context, exm exam.Exam) (exam.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	exm.ID = primitive.NewObjectID()
	repo.db.table[exm.ID] = &exm
	return exm, nil
}

func (repo *examRepository) GetExamByID(_ context.Context, id primitive.ObjectID) (exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if exm, ok := repo.db.table[id]; ok {
		return *exm, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) query(match func(*exam.Exam) bool) []exam.Exam {
	var exams []exam.Exam
	for _, exm := range repo.db.table {
		if match(exm) {
			exams = append(exams, *exm)
		}
	}
	sort.Slice(exams, func(i, j int) bool { return exams[i].Date.After(exams[j].Date) })
	return exams
}

func (repo *examRepository) QueryExamsByStudent(_ context.Context, studentID primitive.ObjectID) ([]exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(exm *exam.Exam) bool { return exm.StudentID == studentID }), nil
}

func (repo *examRepository) QueryExamsByClass(_ context.Context, classID primitive.ObjectID) ([]exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(func(exm *exam.Exam) bool { return exm.ClassID == classID }), nil
}

func (repo *examRepository) UpdateExam(_ context.Context, exm exam.Exam) (exam.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[exm.ID]; !ok {
		return exam.Exam{}, exam.ErrNotFound
	}
	repo.db.table[exm.ID] = &exm
	return exm, nil
}

func (repo *examRepository) DeleteExam(_ context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return exam.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
