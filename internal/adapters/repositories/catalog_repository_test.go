package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/stretchr/testify/suite"
)

type CatalogRepositoryTestSuite struct {
	suite.Suite
	repo *CatalogRepository
	ctx  context.Context
}

func (s *CatalogRepositoryTestSuite) SetupTest() {
	conn := newTestDB(s.T())
	s.Require().NoError(SeedCatalog(conn, testSeed()))
	s.repo = NewCatalogRepository(conn)
	s.ctx = context.Background()
}

func (s *CatalogRepositoryTestSuite) TestGetCountryWithRegions() {
	country, err := s.repo.GetCountry(s.ctx, "jp")
	s.Require().NoError(err)

	s.Equal("Japan", country.Name)
	s.Require().Len(country.Regions, 2)
	s.Equal("kyoto", country.Regions[0].ID)
	s.Equal([]domain.Category{domain.CategoryTemple, domain.CategoryCulture}, country.Regions[0].PopularActivities)
	s.Equal([]domain.Category{}, country.Regions[1].PopularActivities)
}

func (s *CatalogRepositoryTestSuite) TestGetRegion() {
	region, err := s.repo.GetRegion(s.ctx, "kyoto")
	s.Require().NoError(err)

	s.Equal("jp", region.CountryID)
	s.Equal([2]float64{35.0116, 135.7681}, region.Coordinates)

	_, err = s.repo.GetRegion(s.ctx, "osaka")
	s.ErrorIs(err, ports.ErrNotFound)
}

func (s *CatalogRepositoryTestSuite) TestGetActivity() {
	a, err := s.repo.GetActivity(s.ctx, "kinkakuji")
	s.Require().NoError(err)

	s.Equal(domain.CategoryTemple, a.Category)
	s.Equal(1, a.PriceLevel)
	s.Equal("1 Kinkakujicho", a.Location.Address)
	s.Equal([]string{"zen", "garden"}, a.Tags)
	s.Nil(a.EstimatedCost)

	_, err = s.repo.GetActivity(s.ctx, "nope")
	s.ErrorIs(err, ports.ErrNotFound)

	_, err = s.repo.GetCountry(s.ctx, "fr")
	s.ErrorIs(err, ports.ErrNotFound)
}

func (s *CatalogRepositoryTestSuite) TestListActivitiesKeepsSeedOrder() {
	list, err := s.repo.ListActivities(s.ctx, "kyoto")
	s.Require().NoError(err)

	s.Equal([]string{"kinkakuji", "nishiki", "fushimi"}, activityIDs(list))

	empty, err := s.repo.ListActivities(s.ctx, "osaka")
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *CatalogRepositoryTestSuite) TestListActivitiesByCategory() {
	list, err := s.repo.ListActivitiesByCategory(s.ctx, "kyoto", []domain.Category{domain.CategoryTemple, domain.CategoryMuseum})
	s.Require().NoError(err)
	s.Equal([]string{"kinkakuji", "fushimi"}, activityIDs(list))

	none, err := s.repo.ListActivitiesByCategory(s.ctx, "kyoto", nil)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *CatalogRepositoryTestSuite) TestSeedIsIdempotent() {
	s.Require().NoError(SeedCatalog(s.repo.DB, testSeed()))

	list, err := s.repo.ListActivities(s.ctx, "kyoto")
	s.Require().NoError(err)
	s.Len(list, 3)
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryTestSuite))
}

func TestSeedRejectsInvalidCatalog(t *testing.T) {
	conn := newTestDB(t)

	bad := testSeed()
	bad.Activities[0].Category = "spa"
	if err := SeedCatalog(conn, bad); err == nil {
		t.Fatal("expected invalid category to be rejected")
	}

	bad = testSeed()
	bad.Activities[1].RegionID = "osaka"
	if err := SeedCatalog(conn, bad); err == nil {
		t.Fatal("expected unknown region to be rejected")
	}

	bad = testSeed()
	bad.Activities[2].PriceLevel = 5
	if err := SeedCatalog(conn, bad); err == nil {
		t.Fatal("expected price level 5 to be rejected")
	}

	list, err := NewCatalogRepository(conn).ListActivities(context.Background(), "kyoto")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected seeds must not write rows, got %d", len(list))
	}
}

func TestSeedCatalogFromJSON(t *testing.T) {
	conn := newTestDB(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{
		"countries": [{"id": "jp", "name": "Japan", "code": "JP", "flag": "JP"}],
		"regions": [{"id": "kyoto", "name": "Kyoto", "countryId": "jp", "coordinates": [35.01, 135.76]}],
		"activities": [{
			"id": "gion", "name": "Gion", "category": "culture", "duration": 90,
			"rating": 4.5, "priceLevel": 2, "regionId": "kyoto",
			"location": {"lat": 35.0037, "lng": 135.7752, "address": "Gion"}
		}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := SeedCatalogFromJSON(conn, path); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a, err := NewCatalogRepository(conn).GetActivity(context.Background(), "gion")
	if err != nil {
		t.Fatalf("get activity: %v", err)
	}
	if a.Category != domain.CategoryCulture || a.Duration != 90 {
		t.Fatalf("unexpected activity: %+v", a)
	}
	if a.Tags == nil || len(a.Tags) != 0 {
		t.Fatalf("tags = %#v, want empty list", a.Tags)
	}

	if err := SeedCatalogFromJSON(conn, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected missing seed file to fail")
	}
}

func activityIDs(list []domain.Activity) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestShippedSeedCatalogLoads(t *testing.T) {
	conn := newTestDB(t)

	if err := SeedCatalogFromJSON(conn, filepath.Join("..", "..", "..", "data", "seeds", "catalog.json")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := NewCatalogRepository(conn)
	for _, regionID := range []string{"kyoto", "tokyo", "bangkok"} {
		list, err := repo.ListActivities(context.Background(), regionID)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) == 0 {
			t.Fatalf("region %q has no activities", regionID)
		}
	}
}
