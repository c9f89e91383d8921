package repositories

import (
	"testing"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(conn, db.DialectSqlite))
	return conn
}

func testSeed() CatalogSeed {
	return CatalogSeed{
		Countries: []domain.Country{
			{ID: "jp", Name: "Japan", Code: "JP", Flag: "JP"},
		},
		Regions: []domain.Region{
			{
				ID:                "kyoto",
				Name:              "Kyoto",
				CountryID:         "jp",
				Coordinates:       [2]float64{35.0116, 135.7681},
				PopularActivities: []domain.Category{domain.CategoryTemple, domain.CategoryCulture},
			},
			{ID: "tokyo", Name: "Tokyo", CountryID: "jp", Coordinates: [2]float64{35.6762, 139.6503}},
		},
		Activities: []domain.Activity{
			{
				ID: "kinkakuji", Name: "Kinkaku-ji", Category: domain.CategoryTemple,
				Duration: 60, Rating: 4.7, PriceLevel: 1, RegionID: "kyoto",
				Location: domain.Location{Lat: 35.0394, Lng: 135.7292, Address: "1 Kinkakujicho"},
				Tags:     []string{"zen", "garden"},
			},
			{
				ID: "nishiki", Name: "Nishiki Market", Category: domain.CategoryLunch,
				Duration: 60, Rating: 4.4, PriceLevel: 2, RegionID: "kyoto",
				Location: domain.Location{Lat: 35.005, Lng: 135.7649},
			},
			{
				ID: "fushimi", Name: "Fushimi Inari", Category: domain.CategoryTemple,
				Duration: 120, Rating: 4.8, PriceLevel: 1, RegionID: "kyoto",
				Location: domain.Location{Lat: 34.9671, Lng: 135.7727},
			},
			{
				ID: "sensoji", Name: "Senso-ji", Category: domain.CategoryTemple,
				Duration: 60, Rating: 4.6, PriceLevel: 1, RegionID: "tokyo",
				Location: domain.Location{Lat: 35.7148, Lng: 139.7967},
			},
		},
	}
}
