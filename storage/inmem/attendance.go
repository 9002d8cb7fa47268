package inmem

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trezcool/shule/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) CreateAttendance(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	att.ID = primitive.NewObjectID()
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) QueryAttendanceByClass(_ context.Context, classID primitive.ObjectID) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var sessions []attendance.Attendance
	for _, att := range repo.db.table {
		if att.ClassID == classID {
			sessions = append(sessions, *att)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Date.After(sessions[j].Date) })
	return sessions, nil
}
