package database

import (
	"cafeapi/model"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func sampleCafe(name, loc string) *model.Cafe {
	return &model.Cafe{
		Name:        name,
		MapURL:      "https://maps.example/" + name,
		ImgURL:      "https://img.example/" + name + ".jpg",
		Location:    loc,
		Seats:       "20-30",
		HasWifi:     true,
		HasSockets:  true,
		CoffeePrice: strPtr("£2.50"),
	}
}

func TestStore_CreateAssignsIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleCafe("Brew", "Downtown")
	require.NoError(t, s.Create(ctx, first))
	second := sampleCafe("Grind", "Uptown")
	require.NoError(t, s.Create(ctx, second))

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)

	got, err := s.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, *second, got)
}

func TestStore_DuplicateNameRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, sampleCafe("Brew", "Downtown")))
	err := s.Create(ctx, sampleCafe("Brew", "Elsewhere"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.True(t, errors.Is(err, ErrConstraintViolation))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_MissingRequiredFieldRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		clear func(c *model.Cafe)
	}{
		{"name", func(c *model.Cafe) { c.Name = "" }},
		{"map_url", func(c *model.Cafe) { c.MapURL = "" }},
		{"img_url", func(c *model.Cafe) { c.ImgURL = "" }},
		{"location", func(c *model.Cafe) { c.Location = "" }},
		{"seats", func(c *model.Cafe) { c.Seats = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := sampleCafe("Cafe "+tc.name, "Downtown")
			tc.clear(c)
			err := s.Create(ctx, c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConstraintViolation))
			assert.False(t, errors.Is(err, ErrDuplicateName))
		})
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_NullPriceAllowed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := sampleCafe("Brew", "Downtown")
	c.CoffeePrice = nil
	require.NoError(t, s.Create(ctx, c))

	got, err := s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CoffeePrice)
}

func TestStore_ListAllSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Mocha", "Americano", "Zest", "Latte"} {
		require.NoError(t, s.Create(ctx, sampleCafe(name, "Downtown")))
	}

	cafes, err := s.ListAll(ctx)
	require.NoError(t, err)
	names := make([]string, len(cafes))
	for i, c := range cafes {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Americano", "Latte", "Mocha", "Zest"}, names)
}

func TestStore_ListByLocationExactMatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, sampleCafe("B", "Peckham")))
	require.NoError(t, s.Create(ctx, sampleCafe("A", "Peckham")))
	require.NoError(t, s.Create(ctx, sampleCafe("C", "peckham")))
	require.NoError(t, s.Create(ctx, sampleCafe("D", "Peckham Rye")))

	cafes, err := s.ListByLocation(ctx, "Peckham")
	require.NoError(t, err)
	require.Len(t, cafes, 2)
	assert.Equal(t, "A", cafes[0].Name)
	assert.Equal(t, "B", cafes[1].Name)

	none, err := s.ListByLocation(ctx, "Hackney")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_GetRandom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetRandom(ctx)
	assert.ErrorIs(t, err, ErrEmptyTable)

	want := map[string]bool{"A": true, "B": true, "C": true}
	for name := range want {
		require.NoError(t, s.Create(ctx, sampleCafe(name, "Downtown")))
	}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		c, err := s.GetRandom(ctx)
		require.NoError(t, err)
		require.True(t, want[c.Name], "unexpected cafe %q", c.Name)
		seen[c.Name] = true
	}
	assert.Len(t, seen, 3)
}

func TestStore_GetByIDNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdatePrice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := sampleCafe("Brew", "Downtown")
	require.NoError(t, s.Create(ctx, c))
	other := sampleCafe("Grind", "Downtown")
	require.NoError(t, s.Create(ctx, other))

	require.NoError(t, s.UpdatePrice(ctx, c.ID, strPtr("£3.00")))

	got, err := s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	want := *c
	want.CoffeePrice = strPtr("£3.00")
	assert.Equal(t, want, got)

	untouched, err := s.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, *other, untouched)

	// same value again still counts as a match
	require.NoError(t, s.UpdatePrice(ctx, c.ID, strPtr("£3.00")))

	require.NoError(t, s.UpdatePrice(ctx, c.ID, nil))
	got, err = s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CoffeePrice)

	assert.ErrorIs(t, s.UpdatePrice(ctx, 99, strPtr("£1")), ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := sampleCafe("A", "Downtown")
	b := sampleCafe("B", "Downtown")
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), ErrNotFound)

	cafes, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "B", cafes[0].Name)
}

func TestStore_IDsNotReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := sampleCafe("A", "Downtown")
	require.NoError(t, s.Create(ctx, a))
	b := sampleCafe("B", "Downtown")
	require.NoError(t, s.Create(ctx, b))
	require.NoError(t, s.Delete(ctx, b.ID))

	c := sampleCafe("C", "Downtown")
	require.NoError(t, s.Create(ctx, c))
	assert.Greater(t, c.ID, b.ID)
}

func TestStore_FileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cafes.db")

	s, err := Open(ctx, Options{DSN: path})
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, sampleCafe("Brew", "Downtown")))
	require.NoError(t, s.Close())

	s, err = Open(ctx, Options{DSN: path})
	require.NoError(t, err)
	defer s.Close()

	cafes, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Brew", cafes[0].Name)
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/cafe"))
	assert.True(t, IsPostgres("postgresql://localhost/cafe"))
	assert.True(t, IsPostgres("host=localhost user=postgres dbname=cafe sslmode=disable"))
	assert.False(t, IsPostgres("cafes.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "cafes.db?_pragma=busy_timeout(5000)", sqliteDSN("cafes.db"))
	assert.Equal(t, "file:cafes.db?mode=rwc&_pragma=busy_timeout(5000)", sqliteDSN("file:cafes.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=busy_timeout(100)", sqliteDSN("x.db?_pragma=busy_timeout(100)"))
}
