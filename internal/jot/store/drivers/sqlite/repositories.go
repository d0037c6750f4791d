package sqlite

import (
	"context"
	"database/sql"

	"github.com/jotapp/jot/internal/jot/domain"
)

type repositoriesRepo struct {
	q dbtx
}

func (r *repositoriesRepo) ListRepositories(ctx context.Context) ([]domain.Repository, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, user_id FROM repositories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectRepositories(rows)
}

func (r *repositoriesRepo) ListRepositoriesByUser(ctx context.Context, userID int64) ([]domain.Repository, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name, user_id FROM repositories WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectRepositories(rows)
}

func (r *repositoriesRepo) GetRepositoryByID(ctx context.Context, id int64) (domain.Repository, error) {
	var repo domain.Repository
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, user_id FROM repositories WHERE id = ?`, id).
		Scan(&repo.ID, &repo.Name, &repo.UserID)
	if err != nil {
		return domain.Repository{}, mapNotFound(err)
	}
	return repo, nil
}

func (r *repositoriesRepo) CreateRepository(ctx context.Context, userID int64, name string) (domain.Repository, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO repositories (name, user_id) VALUES (?, ?)`, name, userID)
	if err != nil {
		return domain.Repository{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Repository{}, err
	}

	return domain.Repository{ID: id, Name: name, UserID: userID}, nil
}

func collectRepositories(rows *sql.Rows) ([]domain.Repository, error) {
	defer rows.Close()

	repos := []domain.Repository{}
	for rows.Next() {
		var repo domain.Repository
		if err := rows.Scan(&repo.ID, &repo.Name, &repo.UserID); err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, rows.Err()
}
