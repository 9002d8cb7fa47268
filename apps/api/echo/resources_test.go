package echoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/class"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/subject"
	"github.com/trezcool/shule/core/teacher"
)

func (f *fixture) createStudent(t *testing.T, fullname string) student.Student {
	t.Helper()

	std, err := f.stdSvc.Create(context.Background(), student.NewStudent{
		Fullname:     fullname,
		Age:          12,
		MotherNumber: "+243810000001",
		FatherNumber: "+243810000002",
	})
	if err != nil {
		t.Fatalf("creating student failed, %v", err)
	}
	return std
}

func (f *fixture) createClass(t *testing.T, name string) class.Class {
	t.Helper()

	cls, err := f.clsSvc.Create(context.Background(), class.NewClass{Name: name, Level: "primary"})
	if err != nil {
		t.Fatalf("creating class failed, %v", err)
	}
	return cls
}

func Test_healthCheck(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func Test_teacherApi_crud(t *testing.T) {
	f := setup(t)

	// create
	rec := f.do(http.MethodPost, "/api/teachers/create", marshalObj(t, teacher.NewTeacher{
		Name:    "Mwalimu Kabila",
		Number:  "+243810000001",
		Email:   "mwalimu@test.cd",
		Subject: "Mathematics",
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var tch teacher.Teacher
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tch))

	// missing fields
	rec = f.do(http.MethodPost, "/api/teachers/create", marshalObj(t, teacher.NewTeacher{Name: "X"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// duplicate email
	rec = f.do(http.MethodPost, "/api/teachers/create", marshalObj(t, teacher.NewTeacher{
		Name:    "Other",
		Number:  "+243810000002",
		Email:   "mwalimu@test.cd",
		Subject: "Physics",
	}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, kindConflict, decodeErr(t, rec).Kind)

	// read back
	rec = f.do(http.MethodGet, "/api/teachers/getId/"+tch.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/teachers/getAll", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// update
	rec = f.do(http.MethodPut, "/api/teachers/update/"+tch.ID.Hex(), marshalObj(t, teacher.UpdateTeacher{Subject: "Physics"}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated teacher.Teacher
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Physics", updated.Subject)
	assert.Equal(t, tch.Name, updated.Name)

	// delete
	rec = f.do(http.MethodDelete, "/api/teachers/delete/"+tch.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodGet, "/api/teachers/getId/"+tch.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, kindNotFound, decodeErr(t, rec).Kind)
}

func Test_studentApi_populatesClass(t *testing.T) {
	f := setup(t)
	cls := f.createClass(t, "6A")

	rec := f.do(http.MethodPost, "/api/students/create", marshalObj(t, student.NewStudent{
		Fullname:     "Amani Beya",
		Age:          12,
		ClassID:      cls.ID.Hex(),
		MotherNumber: "+243810000001",
		FatherNumber: "+243810000002",
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp studentResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	if assert.NotNil(t, resp.Class) {
		assert.Equal(t, cls.ID, resp.Class.ID)
	}
}

func Test_studentApi_assign_bothRoutes(t *testing.T) {
	f := setup(t)
	cls := f.createClass(t, "6A")
	std := f.createStudent(t, "Amani Beya")

	// student-side route
	path := fmt.Sprintf("/api/students/%s/assign/%s", std.ID.Hex(), cls.ID.Hex())
	rec := f.do(http.MethodPost, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// class-side route conflicts on the same pair
	path = fmt.Sprintf("/api/classes/%s/%s", std.ID.Hex(), cls.ID.Hex())
	rec = f.do(http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, kindConflict, decodeErr(t, rec).Kind)

	// the member list holds the student exactly once
	cls, err := f.clsSvc.GetByID(context.Background(), cls.ID)
	assert.NoError(t, err)
	assert.Len(t, cls.Students, 1)
}

func Test_studentApi_fee(t *testing.T) {
	f := setup(t)
	std := f.createStudent(t, "Amani Beya")
	path := "/api/students/fee/" + std.ID.Hex()

	fPtr := func(v float64) *float64 { return &v }

	// track: paid accumulates
	rec := f.do(http.MethodPost, path, marshalObj(t, student.FeePayment{Total: fPtr(500), Paid: fPtr(100)}))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodPost, path, marshalObj(t, student.FeePayment{Paid: fPtr(150)}))
	assert.Equal(t, http.StatusOK, rec.Code)

	var fee student.Fee
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fee))
	assert.Equal(t, student.Fee{Total: 500, Paid: 250}, fee)

	// status
	rec = f.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var status student.FeeStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, student.FeePending, status.Status)
	assert.Equal(t, float64(250), status.Balance)

	// absolute update
	rec = f.do(http.MethodPut, path, marshalObj(t, student.FeePayment{Paid: fPtr(500)}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fee))
	assert.Equal(t, student.Fee{Total: 500, Paid: 500}, fee)

	// reset
	rec = f.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fee))
	assert.Equal(t, student.Fee{}, fee)

	// negative amounts are rejected
	rec = f.do(http.MethodPost, path, marshalObj(t, student.FeePayment{Paid: fPtr(-5)}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_subjectApi_requiresAuth(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/api/subjects/getAll", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, kindUnauthenticated, decodeErr(t, rec).Kind)
}

func Test_subjectApi_crud(t *testing.T) {
	f := setup(t)
	usr := f.signUpAdmin(t)
	cookie := f.sessionCookie(t, usr)

	rec := f.do(http.MethodPost, "/api/subjects/create", marshalObj(t, subject.NewSubject{Name: "Mathematics"}), cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var sub subject.Subject
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))

	rec = f.do(http.MethodPatch, "/api/subjects/update/"+sub.ID.Hex(), marshalObj(t, subject.UpdateSubject{Code: "MATH-6"}), cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated subject.Subject
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "MATH-6", updated.Code)
	assert.Equal(t, sub.Name, updated.Name)

	rec = f.do(http.MethodGet, "/api/subjects/getById/"+sub.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/subjects/delete/"+sub.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func Test_examApi(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	usr := f.signUpAdmin(t)
	cookie := f.sessionCookie(t, usr)

	cls := f.createClass(t, "6A")
	std := f.createStudent(t, "Amani Beya")
	assert.NoError(t, f.clsSvc.AssignStudent(ctx, cls.ID, std.ID))
	sub, err := f.subSvc.Create(ctx, subject.NewSubject{Name: "Mathematics"})
	assert.NoError(t, err)

	fPtr := func(v float64) *float64 { return &v }
	body := marshalObj(t, exam.NewExam{
		StudentIdentifier: "amani", // partial name lookup
		ClassIdentifier:   cls.ID.Hex(),
		SubjectID:         sub.ID.Hex(),
		Marks:             fPtr(15),
		Total:             fPtr(20),
		ExamType:          exam.TypeMidTerm,
	})

	// auth required
	rec := f.do(http.MethodPost, "/api/exams/create", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/exams/create", body, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp examResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, std.ID, resp.StudentID)
	if assert.NotNil(t, resp.Student) {
		assert.Equal(t, "Amani Beya", resp.Student.Fullname)
	}

	rec = f.do(http.MethodGet, "/api/exams/student/"+std.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/exams/class/"+cls.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	// empty reads are 404s
	other := f.createClass(t, "6B")
	rec = f.do(http.MethodGet, "/api/exams/class/"+other.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPatch, "/api/exams/update/"+resp.ID.Hex(), marshalObj(t, exam.UpdateExam{Marks: fPtr(18)}), cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodDelete, "/api/exams/delete/"+resp.ID.Hex(), nil, cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func Test_attendanceApi(t *testing.T) {
	f := setup(t)
	cls := f.createClass(t, "6A")
	std1 := f.createStudent(t, "Amani Beya")
	std2 := f.createStudent(t, "Neema Kalala")

	body := marshalObj(t, attendance.NewAttendance{
		ClassID: cls.ID.Hex(),
		Students: []attendance.NewEntry{
			{StudentID: std1.ID.Hex(), Status: attendance.StatusPresent},
			{StudentID: std2.ID.Hex(), Status: attendance.StatusLate},
		},
	})
	rec := f.do(http.MethodPost, "/api/attendance", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// duplicate entry for the same student in one session
	body = marshalObj(t, attendance.NewAttendance{
		ClassID: cls.ID.Hex(),
		Students: []attendance.NewEntry{
			{StudentID: std1.ID.Hex(), Status: attendance.StatusPresent},
			{StudentID: std1.ID.Hex(), Status: attendance.StatusAbsent},
		},
	})
	rec = f.do(http.MethodPost, "/api/attendance", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// invalid status
	body = marshalObj(t, attendance.NewAttendance{
		ClassID:  cls.ID.Hex(),
		Students: []attendance.NewEntry{{StudentID: std1.ID.Hex(), Status: "sleeping"}},
	})
	rec = f.do(http.MethodPost, "/api/attendance", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/attendance/class/"+cls.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var sessions []attendanceResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	if assert.Len(t, sessions, 1) {
		assert.Len(t, sessions[0].Students, 2)
	}
}

func Test_pathID_invalid(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/api/students/getId/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, kindValidation, decodeErr(t, rec).Kind)
}
