package inmem

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core/class"
)

type classRepository struct {
	db *classTable
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db.class}
}

func (repo *classRepository) CreateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls.ID = primitive.NewObjectID()
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(_ context.Context) ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	classes := make([]class.Class, 0, len(repo.db.table))
	for _, cls := range repo.db.table {
		classes = append(classes, *cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].CreatedAt.After(classes[j].CreatedAt) })
	return classes, nil
}

func (repo *classRepository) GetClassByID(_ context.Context, id primitive.ObjectID) (class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if cls, ok := repo.db.table[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) GetClassByName(_ context.Context, name string) (class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, cls := range repo.db.table {
		if cls.Name == name {
			return *cls, nil
		}
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) SearchClassesByName(_ context.Context, name string) ([]class.Class, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	name = strings.ToLower(name)
	var classes []class.Class
	for _, cls := range repo.db.table {
		if strings.Contains(strings.ToLower(cls.Name), name) {
			classes = append(classes, *cls)
		}
	}
	return classes, nil
}

func (repo *classRepository) UpdateClass(_ context.Context, cls class.Class) (class.Class, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[cls.ID]; !ok {
		return class.Class{}, class.ErrNotFound
	}
	repo.db.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) DeleteClass(_ context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return class.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *classRepository) AddClassStudent(_ context.Context, id, studentID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls, ok := repo.db.table[id]
	if !ok {
		return class.ErrNotFound
	}
	for _, sid := range cls.Students {
		if sid == studentID {
			return nil
		}
	}
	cls.Students = append(cls.Students, studentID)
	return nil
}

func (repo *classRepository) RemoveClassStudent(_ context.Context, id, studentID primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	cls, ok := repo.db.table[id]
	if !ok {
		return class.ErrNotFound
	}
	for i, sid := range cls.Students {
		if sid == studentID {
			cls.Students = append(cls.Students[:i], cls.Students[i+1:]...)
			break
		}
	}
	return nil
}
