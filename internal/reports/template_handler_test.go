package reports

import (
	"testing"

	"muhasebe-backend/internal/database"
	"muhasebe-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countDefaults(t *testing.T, tplType models.ReportType) int64 {
	t.Helper()
	var n int64
	require.NoError(t, database.DB.Model(&models.ReportTemplate{}).
		Where("template_type = ? AND is_default = ?", tplType, true).
		Count(&n).Error)
	return n
}

func TestSetDefaultKeepsSingleDefault(t *testing.T) {
	db := database.OpenTest(t)

	tpls := make([]*models.ReportTemplate, 3)
	for i, name := range []string{"aylık-standart", "aylık-detaylı", "aylık-özet"} {
		tpls[i] = &models.ReportTemplate{
			Name: name, TemplateType: models.ReportTypeMonthly, CreatedByID: 1,
		}
		require.NoError(t, db.Create(tpls[i]).Error)
	}
	// farklı tipin varsayılanı etkilenmemeli
	daily := &models.ReportTemplate{
		Name: "günlük", TemplateType: models.ReportTypeDaily, IsDefault: true, CreatedByID: 1,
	}
	require.NoError(t, db.Create(daily).Error)

	// bayrak sırayla her şablona taşınır, her adımda tek varsayılan kalır
	for _, tpl := range tpls {
		require.NoError(t, setDefault(tpl))
		assert.EqualValues(t, 1, countDefaults(t, models.ReportTypeMonthly))

		var current models.ReportTemplate
		require.NoError(t, db.Where("template_type = ? AND is_default = ?",
			models.ReportTypeMonthly, true).First(&current).Error)
		assert.Equal(t, tpl.ID, current.ID)
	}

	// aynı şablonu tekrar varsayılan yapmak durumu bozmaz
	require.NoError(t, setDefault(tpls[2]))
	assert.EqualValues(t, 1, countDefaults(t, models.ReportTypeMonthly))

	assert.EqualValues(t, 1, countDefaults(t, models.ReportTypeDaily),
		"başka tipin varsayılanı korunur")
}
