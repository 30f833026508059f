package employee

import (
	"context"
	"testing"

	"empdir/inner/common"
	"empdir/inner/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// сервис поверх настоящего хранилища, заполненного демо-сотрудниками
func setupSeededService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(
		NewEmployeeRepository(setupSqliteDb(t)),
		validator.New(),
		common.WrapLogger(zaptest.NewLogger(t)),
	)
	added, err := svc.Seed(context.Background(), DemoEmployees())
	require.NoError(t, err)
	require.Equal(t, 3, added)
	return svc
}

func TestServiceSqlite_SeededList(t *testing.T) {
	svc := setupSeededService(t)

	result, err := svc.FindAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 9.33, result.AverageYearsWithCompany)
	assert.Equal(t, 100000.0, result.AverageSalary)
	require.Len(t, result.Employees, 3)
	assert.Equal(t, "Bob Doe", result.Employees[0].Name)
	assert.Equal(t, "Leeroy Jenkins", result.Employees[1].Name)
	assert.Equal(t, "Rick Astley", result.Employees[2].Name)
}

func TestServiceSqlite_SeedSkipsNonEmpty(t *testing.T) {
	svc := setupSeededService(t)

	added, err := svc.Seed(context.Background(), DemoEmployees())

	require.NoError(t, err)
	assert.Zero(t, added)
	result, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
}

func TestServiceSqlite_CreateThenGet(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()

	id, err := svc.CreateEmployee(ctx, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	employee, err := svc.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Response{
		Id:               4,
		Name:             "A",
		JobTitle:         "X",
		YearsWithCompany: 1,
		Department:       "D",
		Salary:           50000,
	}, employee)
}

func TestServiceSqlite_CreateStoresRoundedValues(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()
	request := validCreateRequest()
	request.YearsWithCompany = ptr(2.345)
	request.Salary = ptr(1000.005)

	id, err := svc.CreateEmployee(ctx, request)
	require.NoError(t, err)

	employee, err := svc.FindById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2.35, employee.YearsWithCompany)
	assert.Equal(t, 1000.01, employee.Salary)
}

func TestServiceSqlite_CreateAfterDeleteCollides(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()
	require.NoError(t, svc.DeleteById(ctx, 1))

	// осталось 2 сотрудника, следующий id = 3, а он занят
	_, err := svc.CreateEmployee(ctx, validCreateRequest())

	assert.ErrorAs(t, err, &common.AlreadyExistsError{})
	result, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestServiceSqlite_UpdateDepartment(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()

	err := svc.UpdateEmployee(ctx, 2, UpdateRequest{Department: ptr("Finance")})
	require.NoError(t, err)

	employee, err := svc.FindById(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, Response{
		Id:               2,
		Name:             "Leeroy Jenkins",
		JobTitle:         "Software Engineer",
		YearsWithCompany: 9.5,
		Department:       "Finance",
		Salary:           100000,
	}, employee)
}

func TestServiceSqlite_UpdateSalaryToZero(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateEmployee(ctx, 1, UpdateRequest{Salary: ptr(0.0)}))

	employee, err := svc.FindById(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, employee.Salary)
	assert.Equal(t, "HR", employee.Department)
}

func TestServiceSqlite_ReplaceWithMissingFieldKeepsRecord(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()
	before, err := svc.FindById(ctx, 3)
	require.NoError(t, err)

	request := validCreateRequest()
	request.Department = nil
	err = svc.ReplaceEmployee(ctx, 3, request)

	var missingErr common.MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, MissingFieldMessage, missingErr.Message)

	after, err := svc.FindById(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServiceSqlite_ReplaceAllFields(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.ReplaceEmployee(ctx, 3, validCreateRequest()))

	employee, err := svc.FindById(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, Response{Id: 3, Name: "A", JobTitle: "X", YearsWithCompany: 1, Department: "D", Salary: 50000}, employee)
}

func TestServiceSqlite_DeleteThenGet(t *testing.T) {
	svc := setupSeededService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteById(ctx, 2))

	_, err := svc.FindById(ctx, 2)
	assert.ErrorAs(t, err, &common.NotFoundError{})

	// повторное удаление тоже успешно
	assert.NoError(t, svc.DeleteById(ctx, 2))

	result, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 9.25, result.AverageYearsWithCompany)
}
