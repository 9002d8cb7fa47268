package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/shule/core/attendance"
)

type attendanceRepository struct {
	coll *mongo.Collection
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *mongo.Database) attendance.Repository {
	return &attendanceRepository{coll: db.Collection("attendance")}
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	res, err := repo.coll.InsertOne(ctx, att)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.ID = res.InsertedID.(primitive.ObjectID)
	return att, nil
}

func (repo *attendanceRepository) QueryAttendanceByClass(ctx context.Context, classID primitive.ObjectID) ([]attendance.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"classId": classID}, opts)
	if err != nil {
		return nil, err
	}
	var sessions []attendance.Attendance
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
