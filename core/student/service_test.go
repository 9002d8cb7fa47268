package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/storage/inmem"
)

func setup(t *testing.T) *student.Service {
	t.Helper()

	db, err := inmem.Open()
	if err != nil {
		t.Fatalf("inmem.Open() failed, %v", err)
	}
	return student.NewService(inmem.NewStudentRepository(db))
}

func fPtr(f float64) *float64 { return &f }
func iPtr(i int) *int         { return &i }

func createStudent(t *testing.T, svc *student.Service, fullname string) student.Student {
	t.Helper()

	std, err := svc.Create(context.Background(), student.NewStudent{
		Fullname:     fullname,
		Age:          12,
		Gender:       "female",
		MotherNumber: "+243810000001",
		FatherNumber: "+243810000002",
	})
	if err != nil {
		t.Fatalf("Create(%q) failed, %v", fullname, err)
	}
	return std
}

func TestService_Create_duplicateFullname(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	createStudent(t, svc, "Amani Beya")

	_, err := svc.Create(ctx, student.NewStudent{
		Fullname:     "Amani Beya",
		MotherNumber: "+243810000003",
		FatherNumber: "+243810000004",
	})
	assert.Equal(t, student.ErrFullnameExists, err)
}

func TestService_Update_partial(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	std := createStudent(t, svc, "Amani Beya")

	// only the supplied field changes
	updated, err := svc.Update(ctx, std.ID, student.UpdateStudent{Age: iPtr(13)})
	assert.NoError(t, err)
	assert.Equal(t, 13, updated.Age)
	assert.Equal(t, std.Fullname, updated.Fullname)
	assert.Equal(t, std.Gender, updated.Gender)
	assert.Equal(t, std.MotherNumber, updated.MotherNumber)

	// an empty update is a no-op on the data
	again, err := svc.Update(ctx, std.ID, student.UpdateStudent{})
	assert.NoError(t, err)
	assert.Equal(t, updated.Fullname, again.Fullname)
	assert.Equal(t, updated.Age, again.Age)

	// keeping one's own name is not a conflict
	_, err = svc.Update(ctx, std.ID, student.UpdateStudent{Fullname: "Amani Beya"})
	assert.NoError(t, err)
}

func TestService_Update_notFound(t *testing.T) {
	svc := setup(t)

	std := createStudent(t, svc, "Amani Beya")
	if err := svc.Delete(context.Background(), std.ID); err != nil {
		t.Fatalf("Delete() failed, %v", err)
	}

	_, err := svc.Update(context.Background(), std.ID, student.UpdateStudent{Gender: "male"})
	assert.Equal(t, student.ErrNotFound, err)
}

func TestService_TrackFeePayment_accumulates(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	std := createStudent(t, svc, "Amani Beya")

	fee, err := svc.TrackFeePayment(ctx, std.ID, student.FeePayment{Total: fPtr(500), Paid: fPtr(100)})
	assert.NoError(t, err)
	assert.Equal(t, student.Fee{Total: 500, Paid: 100}, fee)

	// paid accumulates, total untouched when unsupplied
	fee, err = svc.TrackFeePayment(ctx, std.ID, student.FeePayment{Paid: fPtr(150)})
	assert.NoError(t, err)
	assert.Equal(t, student.Fee{Total: 500, Paid: 250}, fee)

	status, err := svc.FeeStatus(ctx, std.ID)
	assert.NoError(t, err)
	assert.Equal(t, student.FeeStatus{Total: 500, Paid: 250, Balance: 250, Status: student.FeePending}, status)
}

func TestService_UpdateFeeInfo_overwrites(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	std := createStudent(t, svc, "Amani Beya")

	_, err := svc.TrackFeePayment(ctx, std.ID, student.FeePayment{Total: fPtr(500), Paid: fPtr(400)})
	assert.NoError(t, err)

	// absolute overwrite, unlike TrackFeePayment
	fee, err := svc.UpdateFeeInfo(ctx, std.ID, student.FeePayment{Paid: fPtr(500)})
	assert.NoError(t, err)
	assert.Equal(t, student.Fee{Total: 500, Paid: 500}, fee)

	status, err := svc.FeeStatus(ctx, std.ID)
	assert.NoError(t, err)
	assert.Equal(t, student.FeePaid, status.Status)

	fee, err = svc.UpdateFeeInfo(ctx, std.ID, student.FeePayment{Paid: fPtr(600)})
	assert.NoError(t, err)
	assert.Equal(t, student.Fee{Total: 500, Paid: 600}, fee)

	status, err = svc.FeeStatus(ctx, std.ID)
	assert.NoError(t, err)
	assert.Equal(t, student.FeeOverpaid, status.Status)
	assert.Equal(t, float64(-100), status.Balance)
}

func TestService_DeleteFeeInfo_resets(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	std := createStudent(t, svc, "Amani Beya")

	_, err := svc.TrackFeePayment(ctx, std.ID, student.FeePayment{Total: fPtr(500), Paid: fPtr(100)})
	assert.NoError(t, err)

	fee, err := svc.DeleteFeeInfo(ctx, std.ID)
	assert.NoError(t, err)
	assert.Equal(t, student.Fee{}, fee)

	status, err := svc.FeeStatus(ctx, std.ID)
	assert.NoError(t, err)
	assert.Equal(t, student.FeePaid, status.Status) // zero balance
}
