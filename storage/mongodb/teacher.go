package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/shule/core/teacher"
)

type teacherRepository struct {
	coll *mongo.Collection
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *mongo.Database) teacher.Repository {
	return &teacherRepository{coll: db.Collection("teachers")}
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	res, err := repo.coll.InsertOne(ctx, tch)
	if err != nil {
		return teacher.Teacher{}, err
	}
	tch.ID = res.InsertedID.(primitive.ObjectID)
	return tch, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var teachers []teacher.Teacher
	if err := cursor.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id primitive.ObjectID) (teacher.Teacher, error) {
	var tch teacher.Teacher
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&tch); err != nil {
		if err == mongo.ErrNoDocuments {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, err
	}
	return tch, nil
}

func (repo *teacherRepository) GetTeacherByEmail(ctx context.Context, email string) (teacher.Teacher, error) {
	var tch teacher.Teacher
	if err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&tch); err != nil {
		if err == mongo.ErrNoDocuments {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, err
	}
	return tch, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": tch.ID}, tch)
	if err != nil {
		return teacher.Teacher{}, err
	}
	if res.MatchedCount == 0 {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return teacher.ErrNotFound
	}
	return nil
}

func (repo *teacherRepository) SetTeacherUser(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"userId": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return teacher.ErrNotFound
	}
	return nil
}
