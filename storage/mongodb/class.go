package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/shule/core/class"
)

type classRepository struct {
	coll *mongo.Collection
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *mongo.Database) class.Repository {
	return &classRepository{coll: db.Collection("classes")}
}

func (repo *classRepository) CreateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	res, err := repo.coll.InsertOne(ctx, cls)
	if err != nil {
		return class.Class{}, err
	}
	cls.ID = res.InsertedID.(primitive.ObjectID)
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(ctx context.Context) ([]class.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var classes []class.Class
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(ctx context.Context, id primitive.ObjectID) (class.Class, error) {
	var cls class.Class
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cls); err != nil {
		if err == mongo.ErrNoDocuments {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, err
	}
	return cls, nil
}

func (repo *classRepository) GetClassByName(ctx context.Context, name string) (class.Class, error) {
	var cls class.Class
	if err := repo.coll.FindOne(ctx, bson.M{"name": name}).Decode(&cls); err != nil {
		if err == mongo.ErrNoDocuments {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, err
	}
	return cls, nil
}

func (repo *classRepository) SearchClassesByName(ctx context.Context, name string) ([]class.Class, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var classes []class.Class
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (repo *classRepository) UpdateClass(ctx context.Context, cls class.Class) (class.Class, error) {
	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": cls.ID}, cls)
	if err != nil {
		return class.Class{}, err
	}
	if res.MatchedCount == 0 {
		return class.Class{}, class.ErrNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClass(ctx context.Context, id primitive.ObjectID) error {
	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return class.ErrNotFound
	}
	return nil
}

func (repo *classRepository) AddClassStudent(ctx context.Context, id, studentID primitive.ObjectID) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$addToSet": bson.M{"students": studentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return class.ErrNotFound
	}
	return nil
}

func (repo *classRepository) RemoveClassStudent(ctx context.Context, id, studentID primitive.ObjectID) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"students": studentID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return class.ErrNotFound
	}
	return nil
}
