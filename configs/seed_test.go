package configs_test

import (
	"testing"

	"restx/configs"
	"restx/entity"
	"restx/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestSeedFromFile(t *testing.T) {
	db := testutil.OpenDB(t)

	require.NoError(t, configs.SeedFromFile(db, "testdata/seed.yaml", "http://menu.test"))

	var owner entity.Owner
	require.NoError(t, db.Where("name = ?", "Pho Corner").First(&owner).Error)
	assert.EqualValues(t, 5, count(t, db, &entity.Table{}))
	assert.EqualValues(t, 3, count(t, db, &entity.Dish{}))
	assert.EqualValues(t, 2, count(t, db, &entity.Account{}))
	assert.EqualValues(t, 1, count(t, db, &entity.IngredientImport{}))

	var table entity.Table
	require.NoError(t, db.Where("owner_id = ? AND table_number = ?", owner.ID, 3).First(&table).Error)
	assert.Contains(t, table.QRCode, "http://menu.test/home/"+owner.ID.String())

	var acc entity.Account
	require.NoError(t, db.Where("username = ?", "lan").First(&acc).Error)
	assert.Equal(t, entity.RoleStaff, acc.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte("staff-secret")))

	// a second run skips owners that already exist
	require.NoError(t, configs.SeedFromFile(db, "testdata/seed.yaml", "http://menu.test"))
	assert.EqualValues(t, 1, count(t, db, &entity.Owner{}))
	assert.EqualValues(t, 3, count(t, db, &entity.Dish{}))
}

func TestSeedFromMissingFile(t *testing.T) {
	db := testutil.OpenDB(t)
	assert.Error(t, configs.SeedFromFile(db, "testdata/nope.yaml", ""))
}

func TestSeedOwner(t *testing.T) {
	db := testutil.OpenDB(t)
	cfg := &configs.Config{OwnerUsername: "boss", OwnerPassword: "boss-secret", OwnerName: "RestX"}

	require.NoError(t, configs.SeedOwner(db, cfg))
	require.NoError(t, configs.SeedOwner(db, cfg))
	assert.EqualValues(t, 1, count(t, db, &entity.Owner{}))

	var acc entity.Account
	require.NoError(t, db.Where("username = ?", "boss").First(&acc).Error)
	assert.Equal(t, entity.RoleOwner, acc.Role)
	require.NotNil(t, acc.OwnerID)

	require.NoError(t, configs.SeedOwner(db, &configs.Config{}))
	assert.EqualValues(t, 1, count(t, db, &entity.Account{}))
}

func TestSeedLookupsIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	require.NoError(t, configs.SeedLookups(db))
	assert.EqualValues(t, 5, count(t, db, &entity.OrderStatus{}))
	assert.EqualValues(t, 4, count(t, db, &entity.TableStatus{}))
	assert.EqualValues(t, 3, count(t, db, &entity.PaymentMethod{}))
}
