package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"restx/entity"
	"restx/repository"
	"restx/services"
	"restx/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTableService(db *gorm.DB) *services.TableService {
	return services.NewTableService(db, repository.NewTableRepository(db), "https://menu.example.com/")
}

func statusID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var st entity.TableStatus
	require.NoError(t, db.Where("name = ?", name).First(&st).Error)
	return st.ID
}

func TestUpdateTableStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.Owner(t, db, "Pho Corner")
	table := testutil.Table(t, db, owner.ID, 0, 4)
	svc := newTableService(db)
	at := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)
	svc.Now = func() time.Time { return at }

	occupied := statusID(t, db, entity.TableStatusOccupied)
	v, err := svc.UpdateTableStatus(context.Background(), owner.ID, "staff-9", table.ID, occupied)
	require.NoError(t, err)
	assert.Equal(t, table.ID, v.ID)
	assert.Equal(t, 4, v.TableNumber)
	assert.Equal(t, services.TableStatusRef{ID: occupied, Name: entity.TableStatusOccupied}, v.TableStatus)

	var stored entity.Table
	require.NoError(t, db.First(&stored, table.ID).Error)
	assert.Equal(t, occupied, stored.TableStatusID)
	assert.Equal(t, "staff-9", stored.ModifiedBy)
	require.NotNil(t, stored.ModifiedDate)
	assert.True(t, at.Equal(*stored.ModifiedDate))
}

func TestUpdateTableStatusStaysInsideTheRestaurant(t *testing.T) {
	db := testutil.OpenDB(t)
	mine := testutil.Owner(t, db, "Mine")
	theirs := testutil.Owner(t, db, "Theirs")
	table := testutil.Table(t, db, theirs.ID, 0, 1)
	svc := newTableService(db)

	_, err := svc.UpdateTableStatus(context.Background(), mine.ID, "staff", table.ID, statusID(t, db, entity.TableStatusCleaning))
	assert.True(t, errors.Is(err, services.ErrNotFound))

	var stored entity.Table
	require.NoError(t, db.First(&stored, table.ID).Error)
	assert.Equal(t, table.TableStatusID, stored.TableStatusID)
}

func TestUpdateTableStatusRejectsUnknownStatus(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.Owner(t, db, "Pho Corner")
	table := testutil.Table(t, db, owner.ID, 0, 1)

	_, err := newTableService(db).UpdateTableStatus(context.Background(), owner.ID, "staff", table.ID, 999)
	assert.True(t, errors.Is(err, services.ErrInvalidInput))
}

func TestBoardListsActiveTablesOfOwner(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.Owner(t, db, "Pho Corner")
	other := testutil.Owner(t, db, "Other")
	testutil.Table(t, db, owner.ID, 0, 2)
	testutil.Table(t, db, owner.ID, 0, 1)
	hidden := testutil.Table(t, db, owner.ID, 0, 3)
	require.NoError(t, db.Model(&hidden).Update("is_active", false).Error)
	testutil.Table(t, db, other.ID, 0, 1)

	board, err := newTableService(db).Board(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].TableNumber)
	assert.Equal(t, 2, board[1].TableNumber)
	assert.Equal(t, entity.TableStatusAvailable, board[0].TableStatus.Name)
}

func TestCreateTablePointsQRCodeAtMenu(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.Owner(t, db, "Pho Corner")
	svc := newTableService(db)

	tb, err := svc.Create(context.Background(), owner.ID, "owner", services.TableInput{TableNumber: 12})
	require.NoError(t, err)
	assert.NotZero(t, tb.ID)
	assert.True(t, tb.IsActive)
	assert.Equal(t, entity.TableStatusAvailable, tb.TableStatus.Name)
	assert.Equal(t, svc.MenuURL(owner.ID, tb.ID), tb.QRCode)
	assert.Contains(t, tb.QRCode, "https://menu.example.com/home/"+owner.ID.String())

	_, err = svc.Create(context.Background(), owner.ID, "owner", services.TableInput{TableNumber: 12})
	assert.True(t, errors.Is(err, services.ErrConflict))
}

func TestTableQRCodeIsPNG(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.Owner(t, db, "Pho Corner")
	table := testutil.Table(t, db, owner.ID, 0, 1)

	png, err := newTableService(db).QRCode(context.Background(), owner.ID, table.ID, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}

func TestDeleteTableOfAnotherOwner(t *testing.T) {
	db := testutil.OpenDB(t)
	mine := testutil.Owner(t, db, "Mine")
	theirs := testutil.Owner(t, db, "Theirs")
	table := testutil.Table(t, db, theirs.ID, 0, 1)

	err := newTableService(db).Delete(context.Background(), mine.ID, table.ID)
	assert.True(t, errors.Is(err, services.ErrNotFound))
	assert.EqualValues(t, 1, countRows(t, db, &entity.Table{}))
}
