package employee

import (
	"context"

	"empdir/inner/database"

	"github.com/jmoiron/sqlx"
)

const employeeColumns = "id, name, job_title, years_with_company, department, salary"

type Repository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// FindAll возвращает сотрудников в порядке добавления
func (r *Repository) FindAll(ctx context.Context) ([]Entity, error) {
	employees := []Entity{}
	err := r.db.SelectContext(ctx, &employees, "SELECT "+employeeColumns+" FROM employee ORDER BY id")
	return employees, err
}

func (r *Repository) FindById(ctx context.Context, id int64) (employee Entity, err error) {
	err = r.db.GetContext(ctx, &employee, r.db.Rebind("SELECT "+employeeColumns+" FROM employee WHERE id = ?"), id)
	return employee, err
}

func (r *Repository) CountAll(ctx context.Context) (count int64, err error) {
	err = r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM employee")
	return count, err
}

// DeleteById возвращает количество удалённых строк
func (r *Repository) DeleteById(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM employee WHERE id = ?"), id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *Repository) BeginTransaction(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// LockForInsertTx не даёт параллельным транзакциям вставлять сотрудников,
// пока текущая считает количество и выбирает новый id.
// В sqlite пул из одного соединения и так сериализует запросы.
func (r *Repository) LockForInsertTx(ctx context.Context, tx *sqlx.Tx) error {
	if !database.IsPostgres(r.db) {
		return nil
	}
	_, err := tx.ExecContext(ctx, "LOCK TABLE employee IN SHARE ROW EXCLUSIVE MODE")
	return err
}

func (r *Repository) CountAllTx(ctx context.Context, tx *sqlx.Tx) (count int64, err error) {
	err = tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM employee")
	return count, err
}

func (r *Repository) ExistsByIdTx(ctx context.Context, tx *sqlx.Tx, id int64) (exists bool, err error) {
	err = tx.GetContext(ctx, &exists, tx.Rebind("SELECT EXISTS(SELECT 1 FROM employee WHERE id = ?)"), id)
	return exists, err
}

// FindByIdForUpdateTx читает сотрудника и в postgres блокирует строку до конца транзакции
func (r *Repository) FindByIdForUpdateTx(ctx context.Context, tx *sqlx.Tx, id int64) (employee Entity, err error) {
	query := "SELECT " + employeeColumns + " FROM employee WHERE id = ?"
	if database.IsPostgres(r.db) {
		query += " FOR UPDATE"
	}
	err = tx.GetContext(ctx, &employee, tx.Rebind(query), id)
	return employee, err
}

func (r *Repository) SaveTx(ctx context.Context, tx *sqlx.Tx, employee Entity) (int64, error) {
	_, err := tx.NamedExecContext(ctx,
		`INSERT INTO employee (id, name, job_title, years_with_company, department, salary)
		VALUES (:id, :name, :job_title, :years_with_company, :department, :salary)`,
		employee)
	if err != nil {
		return 0, err
	}
	return employee.Id, nil
}

func (r *Repository) UpdateTx(ctx context.Context, tx *sqlx.Tx, employee Entity) error {
	_, err := tx.NamedExecContext(ctx,
		`UPDATE employee SET name = :name, job_title = :job_title, years_with_company = :years_with_company,
		department = :department, salary = :salary WHERE id = :id`,
		employee)
	return err
}
