package employee

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DemoEmployees - стартовый набор сотрудников для пустой базы
func DemoEmployees() []CreateRequest {
	return []CreateRequest{
		demoEmployee("Bob Doe", "HR Manager", 9.5, "HR", 100000),
		demoEmployee("Leeroy Jenkins", "Software Engineer", 9.5, "IT", 100000),
		demoEmployee("Rick Astley", "Marketing Lead", 9.0, "Marketing", 100000),
	}
}

func demoEmployee(name, jobTitle string, years float64, department string, salary float64) CreateRequest {
	return CreateRequest{
		Name:             &name,
		JobTitle:         &jobTitle,
		YearsWithCompany: &years,
		Department:       &department,
		Salary:           &salary,
	}
}

// Seed добавляет сотрудников, только если база пуста. Возвращает количество добавленных.
func (svc *Service) Seed(ctx context.Context, requests []CreateRequest) (int, error) {
	count, err := svc.repo.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting employees before seeding: %w", err)
	}
	if count > 0 {
		svc.logger.Info("Employee collection is not empty, seeding skipped", zap.Int64("count", count))
		return 0, nil
	}

	for i, request := range requests {
		if _, err := svc.CreateEmployee(ctx, request); err != nil {
			return i, fmt.Errorf("error seeding employee #%d: %w", i+1, err)
		}
	}
	svc.logger.Info("Employee collection seeded", zap.Int("count", len(requests)))
	return len(requests), nil
}
