package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/shule/core/subject"
)

type subjectRepository struct {
	coll *mongo.Collection
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *mongo.Database) subject.Repository {
	return &subjectRepository{coll: db.Collection("subjects")}
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	res, err := repo.coll.InsertOne(ctx, sub)
	if err != nil {
		return subject.Subject{}, err
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects(ctx context.Context) ([]subject.Subject, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var subjects []subject.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(ctx context.Context, id primitive.ObjectID) (subject.Subject, error) {
	var sub subject.Subject
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, err
	}
	return sub, nil
}

func (repo *subjectRepository) GetSubjectByName(ctx context.Context, name string) (subject.Subject, error) {
	var sub subject.Subject
	if err := repo.coll.FindOne(ctx, bson.M{"name": name}).Decode(&sub); err != nil {
		if err == mongo.ErrNoDocuments {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, err
	}
	return sub, nil
}

func (repo *subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": sub.ID}, sub)
	if err != nil {
		return subject.Subject{}, err
	}
	if res.MatchedCount == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return subject.ErrNotFound
	}
	return nil
}
