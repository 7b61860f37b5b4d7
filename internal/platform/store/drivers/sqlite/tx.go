package sqlite

import (
	"context"
	"database/sql"

	"github.com/studyhall/studyhall/internal/platform/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op for transactions; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx starts

func (t *txStore) Users() store.Users                 { return &usersRepo{db: t.tx} }
func (t *txStore) RefreshTokens() store.RefreshTokens { return &refreshTokensRepo{db: t.tx} }
func (t *txStore) Courses() store.Courses             { return &coursesRepo{db: t.tx} }
func (t *txStore) Memberships() store.Memberships     { return &membershipsRepo{db: t.tx} }
func (t *txStore) Chapters() store.Chapters           { return &chaptersRepo{db: t.tx} }
func (t *txStore) Questions() store.Questions         { return &questionsRepo{db: t.tx} }
func (t *txStore) Quizzes() store.Quizzes             { return &quizzesRepo{db: t.tx} }
func (t *txStore) Attempts() store.Attempts           { return &attemptsRepo{db: t.tx} }
