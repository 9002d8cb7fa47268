package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/shule/core/student"
)

type studentRepository struct {
	coll *mongo.Collection
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *mongo.Database) student.Repository {
	return &studentRepository{coll: db.Collection("students")}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.coll.InsertOne(ctx, std)
	if err != nil {
		return student.Student{}, err
	}
	std.ID = res.InsertedID.(primitive.ObjectID)
	return std, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var students []student.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id primitive.ObjectID) (student.Student, error) {
	var std student.Student
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&std); err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return std, nil
}

func (repo *studentRepository) GetStudentByFullname(ctx context.Context, fullname string) (student.Student, error) {
	var std student.Student
	if err := repo.coll.FindOne(ctx, bson.M{"fullname": fullname}).Decode(&std); err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return std, nil
}

func (repo *studentRepository) SearchStudentsByName(ctx context.Context, name string) ([]student.Student, error) {
	filter := bson.M{"fullname": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var students []student.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": std.ID}, std)
	if err != nil {
		return student.Student{}, err
	}
	if res.MatchedCount == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}

func (repo *studentRepository) SetStudentClass(ctx context.Context, id, classID primitive.ObjectID) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"classId": classID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}
