package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQLStore(t *testing.T) (DocumentStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db), mock
}

func TestSQLStore_GetData(t *testing.T) {
	t.Parallel()

	store, mock := newMockSQLStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
		WithArgs(NamespaceRules, "r1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"r1","name":"Rule"}`)))
	mock.ExpectQuery(regexp.QuoteMeta(selectDocumentSQL)).
		WithArgs(NamespaceRules, "r2").
		WillReturnError(sql.ErrNoRows)

	var doc testDocument
	found, err := store.GetData(ctx, NamespaceRules, "r1", &doc)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Rule", doc.Name)

	found, err = store.GetData(ctx, NamespaceRules, "r2", &doc)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_SaveDeleteList(t *testing.T) {
	t.Parallel()

	store, mock := newMockSQLStore(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentSQL)).
		WithArgs(NamespaceRules, "r1", []byte(`{"id":"r1","name":"Rule"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteDocumentSQL)).
		WithArgs(NamespaceRules, "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(listDocumentsSQL)).
		WithArgs(NamespaceRules, objectKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).
			AddRow([]byte(`{"id":"a"}`)).
			AddRow([]byte(`{"id":"b"}`)))

	require.NoError(t, store.SaveData(ctx, NamespaceRules, "r1", testDocument{ID: "r1", Name: "Rule"}))
	require.NoError(t, store.DeleteData(ctx, NamespaceRules, "r1"))

	docs, err := store.ListData(ctx, NamespaceRules)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.JSONEq(t, `{"id":"b"}`, string(docs[1]))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_Errors(t *testing.T) {
	t.Parallel()

	store, mock := newMockSQLStore(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(upsertDocumentSQL)).
		WillReturnError(errors.New("connection reset"))

	err := store.SaveData(ctx, NamespaceRules, "r1", testDocument{ID: "r1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write rules/r1")
	assert.Contains(t, err.Error(), "connection reset")
}
