package store

import (
	"context"

	"github.com/google/uuid"
)

const createGist = `-- name: CreateGist :one
INSERT INTO gists (username, language, code)
VALUES ($1, $2, $3)
RETURNING id, username, language, code, created_at`

type CreateGistParams struct {
	Username string `json:"username"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

func (q *Queries) CreateGist(ctx context.Context, arg CreateGistParams) (Gist, error) {
	row := q.db.QueryRow(ctx, createGist, arg.Username, arg.Language, arg.Code)
	var i Gist
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Language,
		&i.Code,
		&i.CreatedAt,
	)
	return i, err
}

const getGist = `-- name: GetGist :one
SELECT id, username, language, code, created_at
FROM gists
WHERE id = $1`

func (q *Queries) GetGist(ctx context.Context, id uuid.UUID) (Gist, error) {
	row := q.db.QueryRow(ctx, getGist, id)
	var i Gist
	err := row.Scan(
		&i.ID,
		&i.Username,
		&i.Language,
		&i.Code,
		&i.CreatedAt,
	)
	return i, err
}
