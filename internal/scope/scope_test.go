package scope

import (
	"testing"

	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	db := database.OpenTest(t)

	require.NoError(t, db.Create(&models.Expense{
		Amount: decimal.New(100, 0), ItemName: "çay", StoreID: "kadikoy", RecordedByID: 1,
	}).Error)
	require.NoError(t, db.Create(&models.Expense{
		Amount: decimal.New(200, 0), ItemName: "kahve", StoreID: "besiktas", RecordedByID: 2,
	}).Error)

	staff := &models.User{StoreID: "kadikoy"}
	admin := &models.User{StoreID: "merkez", IsSuperuser: true}

	var rows []models.Expense
	require.NoError(t, Filter(db.Model(&models.Expense{}), staff).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "kadikoy", rows[0].StoreID)

	require.NoError(t, Filter(db.Model(&models.Expense{}), admin).Find(&rows).Error)
	assert.Len(t, rows, 2, "superuser tüm mağazaları görür")
}

func TestForRequest(t *testing.T) {
	db := database.OpenTest(t)

	require.NoError(t, db.Create(&models.Expense{
		Amount: decimal.New(100, 0), ItemName: "çay", StoreID: "kadikoy", RecordedByID: 1,
	}).Error)
	require.NoError(t, db.Create(&models.Expense{
		Amount: decimal.New(200, 0), ItemName: "kahve", StoreID: "besiktas", RecordedByID: 2,
	}).Error)

	staff := &models.User{StoreID: "kadikoy"}
	admin := &models.User{StoreID: "merkez", IsSuperuser: true}

	// normal kullanıcıda store_id parametresi etkisizdir
	var rows []models.Expense
	require.NoError(t, ForRequest(db.Model(&models.Expense{}), staff, "besiktas").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "kadikoy", rows[0].StoreID)

	require.NoError(t, ForRequest(db.Model(&models.Expense{}), admin, "besiktas").Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "besiktas", rows[0].StoreID)

	require.NoError(t, ForRequest(db.Model(&models.Expense{}), admin, "").Find(&rows).Error)
	assert.Len(t, rows, 2)
}

func TestStoreIDForWrite(t *testing.T) {
	staff := &models.User{StoreID: "kadikoy"}
	admin := &models.User{StoreID: "merkez", IsSuperuser: true}

	assert.Equal(t, "kadikoy", StoreIDForWrite(staff, ""))
	assert.Equal(t, "kadikoy", StoreIDForWrite(staff, "besiktas"), "başka mağaza adına kayıt açılamaz")
	assert.Equal(t, "besiktas", StoreIDForWrite(admin, "besiktas"))
	assert.Equal(t, "merkez", StoreIDForWrite(admin, ""))
}
