package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"schoolhub/api/internal/models"
)

const classroomColumns = `classroom_id, name, description, educator_id, created_at`

type ClassroomRepository struct {
	pool *pgxpool.Pool
}

func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

func (r *ClassroomRepository) List(ctx context.Context) ([]models.Classroom, error) {
	query := `SELECT ` + classroomColumns + ` FROM classrooms ORDER BY classroom_id`
	return r.list(ctx, query)
}

func (r *ClassroomRepository) GetByID(ctx context.Context, id int64) (models.Classroom, error) {
	query := `SELECT ` + classroomColumns + ` FROM classrooms WHERE classroom_id = $1`
	classroom, err := scanClassroom(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Classroom{}, ErrClassroomNotFound
		}
		return models.Classroom{}, err
	}
	return classroom, nil
}

// Search matches term as a case-insensitive substring of the classroom name.
func (r *ClassroomRepository) Search(ctx context.Context, term string) ([]models.Classroom, error) {
	query := `SELECT ` + classroomColumns + ` FROM classrooms WHERE name ILIKE $1 ORDER BY classroom_id`
	return r.list(ctx, query, likePattern(term))
}

func (r *ClassroomRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM classrooms WHERE classroom_id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete classroom: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrClassroomNotFound
	}
	return nil
}

func (r *ClassroomRepository) list(ctx context.Context, query string, args ...any) ([]models.Classroom, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classrooms []models.Classroom
	for rows.Next() {
		classroom, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		classrooms = append(classrooms, classroom)
	}
	return classrooms, rows.Err()
}

func scanClassroom(row pgx.Row) (models.Classroom, error) {
	var classroom models.Classroom
	if err := row.Scan(
		&classroom.ID,
		&classroom.Name,
		&classroom.Description,
		&classroom.EducatorID,
		&classroom.CreatedAt,
	); err != nil {
		return models.Classroom{}, err
	}
	return classroom, nil
}
