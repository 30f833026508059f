package employee

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const decimalPlaces = 2

// roundTwoPlaces округляет до сотых, половину - от нуля (1.005 -> 1.01, -2.345 -> -2.35).
// Считаем в decimal, иначе 1.005*100 во float64 даёт 100.49999...
func roundTwoPlaces(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(decimalPlaces).Float64()
	return rounded
}

// average возвращает среднее, округлённое до сотых; для пустого набора - 0
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, value := range values {
		sum = sum.Add(decimal.NewFromFloat(value))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(values)))).Round(decimalPlaces).Float64()
	return avg
}

// sortByTenure сортирует по стажу по убыванию; при равном стаже порядок сохраняется
func sortByTenure(entities []Entity) {
	slices.SortStableFunc(entities, func(a, b Entity) int {
		return cmp.Compare(b.YearsWithCompany, a.YearsWithCompany)
	})
}

func buildListResponse(entities []Entity) ListResponse {
	sortByTenure(entities)

	years := make([]float64, len(entities))
	salaries := make([]float64, len(entities))
	employees := make([]Response, len(entities))
	for i, entity := range entities {
		years[i] = entity.YearsWithCompany
		salaries[i] = entity.Salary
		employees[i] = entity.toResponse()
	}

	return ListResponse{
		Total:                   len(entities),
		AverageYearsWithCompany: average(years),
		AverageSalary:           average(salaries),
		Employees:               employees,
	}
}

// ParseId приводит идентификатор из пути к числу: "1", " 1 " и "1.0" означают сотрудника 1.
// Строка, которая не может быть целым числом, не совпадает ни с одним сотрудником.
func ParseId(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value != math.Trunc(value) {
		return 0, false
	}
	if value < math.MinInt64 || value >= math.MaxInt64 {
		return 0, false
	}
	return int64(value), true
}
