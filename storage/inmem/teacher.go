package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch.ID = primitive.NewObjectID()
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers(_ context.Context) ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.table))
	for _, tch := range repo.db.table {
		teachers = append(teachers, *tch)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].CreatedAt.After(teachers[j].CreatedAt) })
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(_ context.Context, id primitive.ObjectID) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tch, ok := repo.db.table[id]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) GetTeacherByEmail(_ context.Context, email string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, tch := range repo.db.table {
		if tch.Email == email {
			return *tch, nil
		}
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) UpdateTeacher(_ context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[tch.ID]; !ok {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacher(_ context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *teacherRepository) SetTeacherUser(_ context.Context, id, userID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	tch, ok := repo.db.table[id]
	if !ok {
		return teacher.ErrNotFound
	}
	tch.UserID = userID
	return nil
}
