package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/shule/core/exam"
)

type examRepository struct {
	coll *mongo.Collection
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *mongo.Database) exam.Repository {
	return &examRepository{coll: db.Collection("exams")}
}

func (repo *examRepository) CreateExam(ctx context.Context, exm exam.Exam) (exam.Exam, error) {
	res, err := repo.coll.InsertOne(ctx, exm)
	if err != nil {
		return exam.Exam{}, err
	}
	exm.ID = res.InsertedID.(primitive.ObjectID)
	return exm, nil
}

func (repo *examRepository) GetExamByID(ctx context.Context, id primitive.ObjectID) (exam.Exam, error) {
	var exm exam.Exam
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&exm); err != nil {
		if err == mongo.ErrNoDocuments {
			return exam.Exam{}, exam.ErrNotFound
		}
		return exam.Exam{}, err
	}
	return exm, nil
}

func (repo *examRepository) queryExams(ctx context.Context, filter bson.M) ([]exam.Exam, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var exams []exam.Exam
	if err := cursor.All(ctx, &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

func (repo *examRepository) QueryExamsByStudent(ctx context.Context, studentID primitive.ObjectID) ([]exam.Exam, error) {
	return repo.queryExams(ctx, bson.M{"studentId": studentID})
}

func (repo *examRepository) QueryExamsByClass(ctx context.Context, classID primitive.ObjectID) ([]exam.Exam, error) {
	return repo.queryExams(ctx, bson.M{"classId": classID})
}

func (repo *examRepository) UpdateExam(ctx context.Context, exm exam.Exam) (exam.Exam, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": exm.ID}, exm)
	if err != nil {
		return exam.Exam{}, err
	}
	if res.MatchedCount == 0 {
		return exam.Exam{}, exam.ErrNotFound
	}
	return exm, nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return exam.ErrNotFound
	}
	return nil
}
