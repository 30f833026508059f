package employee

type Entity struct {
	Id               int64   `db:"id"`
	Name             string  `db:"name"`
	JobTitle         string  `db:"job_title"`
	YearsWithCompany float64 `db:"years_with_company"`
	Department       string  `db:"department"`
	Salary           float64 `db:"salary"`
}

func (e *Entity) toResponse() Response {
	return Response{
		Id:               e.Id,
		Name:             e.Name,
		JobTitle:         e.JobTitle,
		YearsWithCompany: e.YearsWithCompany,
		Department:       e.Department,
		Salary:           e.Salary,
	}
}

type Response struct {
	Id               int64   `json:"id"`
	Name             string  `json:"name"`
	JobTitle         string  `json:"job_title"`
	YearsWithCompany float64 `json:"years_with_company"`
	Department       string  `json:"department"`
	Salary           float64 `json:"salary"`
} // @name Employee

// ListResponse - список сотрудников вместе со сводной статистикой
type ListResponse struct {
	Total                   int        `json:"total"`
	AverageYearsWithCompany float64    `json:"average_years_with_company"`
	AverageSalary           float64    `json:"average_salary"`
	Employees               []Response `json:"employees"`
} // @name EmployeeList

// CreateRequest - запрос на создание сотрудника и на полную замену (PUT).
// Поля - указатели: nil значит "не передано", а 0 - вполне законное значение.
type CreateRequest struct {
	Name             *string  `json:"name" validate:"required,notblank,max=155"`
	JobTitle         *string  `json:"job_title" validate:"required,notblank,max=155"`
	YearsWithCompany *float64 `json:"years_with_company" validate:"required,gte=0"`
	Department       *string  `json:"department" validate:"required,notblank,max=155"`
	Salary           *float64 `json:"salary" validate:"required,gte=0"`
} // @name CreateEmployeeRequest

// вызывать только после успешной валидации
func (req *CreateRequest) ToEntity() Entity {
	return Entity{
		Name:             *req.Name,
		JobTitle:         *req.JobTitle,
		YearsWithCompany: roundTwoPlaces(*req.YearsWithCompany),
		Department:       *req.Department,
		Salary:           roundTwoPlaces(*req.Salary),
	}
}

// UpdateRequest - частичное обновление (PATCH), меняются только переданные поля
type UpdateRequest struct {
	Name             *string  `json:"name" validate:"omitempty,notblank,max=155"`
	JobTitle         *string  `json:"job_title" validate:"omitempty,notblank,max=155"`
	YearsWithCompany *float64 `json:"years_with_company" validate:"omitempty,gte=0"`
	Department       *string  `json:"department" validate:"omitempty,notblank,max=155"`
	Salary           *float64 `json:"salary" validate:"omitempty,gte=0"`
} // @name UpdateEmployeeRequest

// HasAnyField - передано ли хоть одно поле
func (req *UpdateRequest) HasAnyField() bool {
	return req.Name != nil ||
		req.JobTitle != nil ||
		req.YearsWithCompany != nil ||
		req.Department != nil ||
		req.Salary != nil
}

// ApplyTo переносит переданные поля в сущность, остальные остаются прежними
func (req *UpdateRequest) ApplyTo(entity *Entity) {
	if req.Name != nil {
		entity.Name = *req.Name
	}
	if req.JobTitle != nil {
		entity.JobTitle = *req.JobTitle
	}
	if req.YearsWithCompany != nil {
		entity.YearsWithCompany = roundTwoPlaces(*req.YearsWithCompany)
	}
	if req.Department != nil {
		entity.Department = *req.Department
	}
	if req.Salary != nil {
		entity.Salary = roundTwoPlaces(*req.Salary)
	}
}
