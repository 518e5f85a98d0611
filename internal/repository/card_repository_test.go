package repository_test

import (
	"context"
	"testing"

	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCardCreateWithNextOrder_LocksParentList(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	listID := uuid.New()
	card := &model.Card{
		ID:              uuid.New(),
		ListID:          listID,
		Name:            "Fix login",
		DueDateReminder: model.ReminderNone,
		CreatedBy:       uuid.New(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "lists" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(listID.String()))
	mock.ExpectQuery(`SELECT COALESCE`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO "cards"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(card.ID.String()))
	mock.ExpectCommit()

	err := cardRepo.CreateWithNextOrder(context.Background(), card)

	assert.NoError(t, err)
	assert.Equal(t, 6, card.Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardCreateWithNextOrder_DeletedList(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	card := &model.Card{ID: uuid.New(), ListID: uuid.New(), Name: "Fix login", CreatedBy: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "lists" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := cardRepo.CreateWithNextOrder(context.Background(), card)

	assert.ErrorIs(t, err, repository.ErrListNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Move is one UPDATE setting list and order together; no sibling rows are
// touched.
func TestCardMove_SingleUpdate(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := cardRepo.Move(context.Background(), uuid.New(), uuid.New(), 2, uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardMove_DeletedCard(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := cardRepo.Move(context.Background(), uuid.New(), uuid.New(), 2, uuid.New())

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardSoftDelete_StampsDeletedBy(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "cards" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := cardRepo.SoftDelete(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
