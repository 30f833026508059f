package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"empdir/inner/common"
	"empdir/inner/database"
	"empdir/inner/validator"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	MissingFieldMessage = "Invalid request: missing a required field. Please provide all required fields."
	NoFieldMessage      = "Invalid request: missing any required field. Please provide at least one field."
)

type Service struct {
	repo      Repo
	validator Validator
	logger    *common.Logger
}

type Repo interface {
	FindAll(ctx context.Context) ([]Entity, error)
	FindById(ctx context.Context, id int64) (Entity, error)
	CountAll(ctx context.Context) (int64, error)
	DeleteById(ctx context.Context, id int64) (int64, error)
	BeginTransaction(ctx context.Context) (*sqlx.Tx, error)
	LockForInsertTx(ctx context.Context, tx *sqlx.Tx) error
	CountAllTx(ctx context.Context, tx *sqlx.Tx) (int64, error)
	ExistsByIdTx(ctx context.Context, tx *sqlx.Tx, id int64) (bool, error)
	FindByIdForUpdateTx(ctx context.Context, tx *sqlx.Tx, id int64) (Entity, error)
	SaveTx(ctx context.Context, tx *sqlx.Tx, employee Entity) (int64, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, employee Entity) error
}

type Validator interface {
	Validate(request any) error
}

// функция-конструктор
func NewService(repo Repo, validator Validator, logger *common.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

func notFound(id int64) error {
	return common.NewNotFoundError(fmt.Sprintf("Employee %d not found", id))
}

// FindAll возвращает всех сотрудников по убыванию стажа вместе со средними значениями
func (svc *Service) FindAll(ctx context.Context) (ListResponse, error) {
	svc.logger.Debug("Finding all employees")

	entities, err := svc.repo.FindAll(ctx)
	if err != nil {
		svc.logger.Error("Failed to find all employees", zap.Error(err))
		return ListResponse{}, fmt.Errorf("error finding all employees: %w", err)
	}

	response := buildListResponse(entities)
	svc.logger.Debug("Found all employees",
		zap.Int("total", response.Total),
		zap.Float64("average_years_with_company", response.AverageYearsWithCompany))
	return response, nil
}

func (svc *Service) FindById(ctx context.Context, id int64) (Response, error) {
	svc.logger.Debug("Finding employee by ID", zap.Int64("id", id))

	var entity, err = svc.repo.FindById(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		svc.logger.Debug("Employee not found", zap.Int64("id", id))
		return Response{}, notFound(id)
	}
	if err != nil {
		svc.logger.Error("Failed to find employee by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return Response{}, fmt.Errorf("error finding employee with id %d: %w", id, err)
	}

	return entity.toResponse(), nil
}

// Метод для создания нового сотрудника.
// id нового сотрудника = количество сотрудников + 1. После удалений такой id может быть занят,
// тогда возвращается AlreadyExistsError.
func (svc *Service) CreateEmployee(ctx context.Context, request CreateRequest) (int64, error) {
	if err := svc.validateRequest(request); err != nil {
		return 0, err
	}

	entity := request.ToEntity()
	svc.logger.Info("Creating new employee", zap.String("name", entity.Name))

	var newEmployeeId int64
	err := svc.withTransaction(ctx, "create employee", func(tx *sqlx.Tx) error {
		if err := svc.repo.LockForInsertTx(ctx, tx); err != nil {
			return fmt.Errorf("error locking employee table: %w", err)
		}

		count, err := svc.repo.CountAllTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("error counting employees: %w", err)
		}
		entity.Id = count + 1

		isExist, err := svc.repo.ExistsByIdTx(ctx, tx, entity.Id)
		if err != nil {
			return fmt.Errorf("error checking employee id %d: %w", entity.Id, err)
		}
		if isExist {
			svc.logger.Warn("Next employee id is already taken", zap.Int64("id", entity.Id))
			return common.AlreadyExistsError{Message: fmt.Sprintf("employee with id %d already exists", entity.Id)}
		}

		newEmployeeId, err = svc.repo.SaveTx(ctx, tx, entity)
		if database.IsUniqueViolation(err) {
			return common.AlreadyExistsError{Message: fmt.Sprintf("employee with id %d already exists", entity.Id)}
		}
		if err != nil {
			return fmt.Errorf("error creating employee with name %s: %w", entity.Name, err)
		}
		return nil
	})
	if err != nil {
		svc.logger.Error("Failed to create employee",
			zap.String("name", entity.Name),
			zap.Error(err))
		return 0, err
	}

	svc.logger.Info("Employee created successfully",
		zap.String("name", entity.Name),
		zap.Int64("id", newEmployeeId))
	return newEmployeeId, nil
}

// ReplaceEmployee перезаписывает все поля сотрудника
func (svc *Service) ReplaceEmployee(ctx context.Context, id int64, request CreateRequest) error {
	svc.logger.Info("Replacing employee", zap.Int64("id", id))

	err := svc.withTransaction(ctx, "replace employee", func(tx *sqlx.Tx) error {
		if _, err := svc.findForUpdate(ctx, tx, id); err != nil {
			return err
		}
		if err := svc.validateRequest(request); err != nil {
			return err
		}

		replacement := request.ToEntity()
		replacement.Id = id
		if err := svc.repo.UpdateTx(ctx, tx, replacement); err != nil {
			return fmt.Errorf("error replacing employee with id %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		svc.logger.Warn("Employee was not replaced", zap.Int64("id", id), zap.Error(err))
		return err
	}

	svc.logger.Info("Employee replaced successfully", zap.Int64("id", id))
	return nil
}

// UpdateEmployee меняет только переданные поля
func (svc *Service) UpdateEmployee(ctx context.Context, id int64, request UpdateRequest) error {
	svc.logger.Info("Updating employee", zap.Int64("id", id))

	err := svc.withTransaction(ctx, "update employee", func(tx *sqlx.Tx) error {
		entity, err := svc.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if !request.HasAnyField() {
			return common.MissingFieldError{Message: NoFieldMessage}
		}
		if err := svc.validatePartialRequest(request); err != nil {
			return err
		}

		request.ApplyTo(&entity)
		if err := svc.repo.UpdateTx(ctx, tx, entity); err != nil {
			return fmt.Errorf("error updating employee with id %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		svc.logger.Warn("Employee was not updated", zap.Int64("id", id), zap.Error(err))
		return err
	}

	svc.logger.Info("Employee updated successfully", zap.Int64("id", id))
	return nil
}

// DeleteById удаляет сотрудника. Удаление отсутствующего сотрудника - не ошибка.
func (svc *Service) DeleteById(ctx context.Context, id int64) error {
	svc.logger.Info("Deleting employee by ID", zap.Int64("id", id))

	deleted, err := svc.repo.DeleteById(ctx, id)
	if err != nil {
		svc.logger.Error("Failed to delete employee by ID",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("error deleting employee with id %d: %w", id, err)
	}

	if deleted == 0 {
		svc.logger.Warn("Employee to delete was not found", zap.Int64("id", id))
		return nil
	}
	svc.logger.Info("Employee deleted successfully", zap.Int64("id", id))
	return nil
}

func (svc *Service) findForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (Entity, error) {
	entity, err := svc.repo.FindByIdForUpdateTx(ctx, tx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Entity{}, notFound(id)
	}
	if err != nil {
		return Entity{}, fmt.Errorf("error finding employee with id %d: %w", id, err)
	}
	return entity, nil
}

// валидация запроса: отсутствующие поля -> MissingFieldError, прочие нарушения -> RequestValidationError
func (svc *Service) validateRequest(request any) error {
	validationErr, err := svc.validate(request)
	if validationErr == nil {
		return err
	}
	if missing := validationErr.MissingFields(); len(missing) > 0 {
		svc.logger.Warn("Employee request is missing fields", zap.Strings("fields", missing))
		return common.MissingFieldError{Message: MissingFieldMessage, Fields: missing}
	}
	return svc.invalidRequest(*validationErr)
}

// в частичном обновлении поле либо не передано, либо передано с недопустимым значением,
// поэтому пустая строка - ошибка значения, а не отсутствие поля
func (svc *Service) validatePartialRequest(request any) error {
	validationErr, err := svc.validate(request)
	if validationErr == nil {
		return err
	}
	return svc.invalidRequest(*validationErr)
}

func (svc *Service) validate(request any) (*validator.ValidationErrors, error) {
	svc.logger.Debug("Validating employee request", zap.Any("request", request))

	err := svc.validator.Validate(request)
	if err == nil {
		return nil, nil
	}

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return &validationErr, nil
	}
	// Если это другая ошибка валидации, возвращаем её как есть
	return nil, common.RequestValidationError{Message: err.Error()}
}

func (svc *Service) invalidRequest(validationErr validator.ValidationErrors) error {
	svc.logger.Warn("Employee request validation failed", zap.Error(validationErr))
	return common.RequestValidationError{
		Message: "Data validation error",
		Data:    validationErr.Errors,
	}
}

// withTransaction выполняет fn в транзакции: коммит при успехе, откат при ошибке или панике
func (svc *Service) withTransaction(ctx context.Context, operation string, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := svc.repo.BeginTransaction(ctx)
	if err != nil {
		svc.logger.Error("Failed to begin transaction",
			zap.String("operation", operation),
			zap.Error(err))
		return fmt.Errorf("error %s: error creating transaction: %w", operation, err)
	}

	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				svc.logger.Error("Rollback after panic failed",
					zap.String("operation", operation),
					zap.Error(rollbackErr))
			}
			panic(r)
		}

		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				svc.logger.Error("Failed to rollback transaction",
					zap.String("operation", operation),
					zap.Error(rollbackErr))
			}
			return
		}

		if commitErr := tx.Commit(); commitErr != nil {
			svc.logger.Error("Failed to commit transaction",
				zap.String("operation", operation),
				zap.Error(commitErr))
			err = fmt.Errorf("error %s: commit failed: %w", operation, commitErr)
		}
	}()

	return fn(tx)
}
