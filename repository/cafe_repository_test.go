package repository

import (
	"cafewifi/model"
	"cafewifi/testutil"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newCafe(name, location string, author *model.User) *model.Cafe {
	c := &model.Cafe{
		Name:     name,
		MapURL:   "https://maps.example/" + name,
		ImgURL:   "https://img.example/" + name + ".jpg",
		Location: location,
		Seats:    "20-30",
		HasWifi:  true,
	}
	if author != nil {
		id := author.ID
		c.AuthorID = &id
	}
	return c
}

func names(cafes []model.Cafe) []string {
	out := make([]string, 0, len(cafes))
	for _, c := range cafes {
		out = append(out, c.Name)
	}
	return out
}

func setupCafes(t *testing.T) (*CafeRepository, *model.User) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	users := NewUserRepository(db)
	author := &model.User{Email: "ada@example.com", Name: "Ada", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), author))
	return NewCafeRepository(db), author
}

func TestCafeRepository_CreateRejectsDuplicateName(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newCafe("Alpha", "Shoreditch", author)))
	err := repo.Create(ctx, newCafe("Alpha", "Hackney", author))
	assert.ErrorIs(t, err, ErrCafeNameTaken)

	// Names are compared case-sensitively.
	require.NoError(t, repo.Create(ctx, newCafe("alpha", "Hackney", author)))
}

func TestCafeRepository_ListSortedWithAuthor(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Create(ctx, newCafe("Gamma", "Peckham", author)))
	require.NoError(t, repo.Create(ctx, newCafe("Alpha", "Shoreditch", author)))
	require.NoError(t, repo.Create(ctx, newCafe("Beta", "Bermondsey", nil)))

	cafes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names(cafes))

	require.NotNil(t, cafes[0].AuthorName())
	assert.Equal(t, "Ada", *cafes[0].AuthorName())
	assert.Nil(t, cafes[1].AuthorName())
}

func TestCafeRepository_Search(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	for _, c := range []*model.Cafe{
		newCafe("Alpha", "Shoreditch", author),
		newCafe("Beta", "Bermondsey", author),
		newCafe("gamma", "Peckham", author),
		newCafe("Dusk", "50%_Street", author),
	} {
		require.NoError(t, repo.Create(ctx, c))
	}

	got, err := repo.SearchByName(ctx, "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alpha", "Beta", "gamma"}, names(got))

	got, err = repo.SearchByName(ctx, "ALP")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, names(got))

	got, err = repo.SearchByLocation(ctx, "peck")
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma"}, names(got))

	got, err = repo.SearchByLocation(ctx, "%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dusk"}, names(got), "wildcards are matched literally")

	got, err = repo.SearchByName(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCafeRepository_Random(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	_, err := repo.Random(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, newCafe("Alpha", "Shoreditch", author)))
	require.NoError(t, repo.Create(ctx, newCafe("Beta", "Bermondsey", author)))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c, err := repo.Random(ctx)
		require.NoError(t, err)
		seen[c.Name] = true
	}
	assert.Subset(t, []string{"Alpha", "Beta"}, keys(seen))
}

func TestCafeRepository_RandomAfterDelete(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		require.NoError(t, repo.Create(ctx, newCafe(name, "London", author)))
	}
	alpha, err := repo.SearchByName(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, alpha, 1)
	require.NoError(t, repo.Delete(ctx, alpha[0].ID))

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		c, err := repo.Random(ctx)
		require.NoError(t, err)
		seen[c.Name] = true
	}
	assert.ElementsMatch(t, []string{"Beta", "Gamma"}, keys(seen))
}

func TestCafeRepository_SearchFoldsNonASCII(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newCafe("ÉCLAIR Café", "ZÜRICH", author)))
	require.NoError(t, repo.Create(ctx, newCafe("Plain", "Paris", author)))

	got, err := repo.SearchByName(ctx, "éclair")
	require.NoError(t, err)
	assert.Equal(t, []string{"ÉCLAIR Café"}, names(got))

	got, err = repo.SearchByName(ctx, "CAFÉ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ÉCLAIR Café"}, names(got))

	got, err = repo.SearchByLocation(ctx, "zürich")
	require.NoError(t, err)
	assert.Equal(t, []string{"ÉCLAIR Café"}, names(got))
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "Ada", got[0].Author.Name)
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCafeRepository_Update(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	alpha := newCafe("Alpha", "Shoreditch", author)
	beta := newCafe("Beta", "Bermondsey", author)
	require.NoError(t, repo.Create(ctx, alpha))
	require.NoError(t, repo.Create(ctx, beta))

	// Keeping the same name is allowed.
	price := "3.20 £"
	alpha.Location = "Hoxton"
	alpha.HasWifi = false
	alpha.CoffeePrice = &price
	require.NoError(t, repo.Update(ctx, alpha))

	got, err := repo.GetByID(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hoxton", got.Location)
	assert.False(t, got.HasWifi)
	require.NotNil(t, got.CoffeePrice)
	assert.Equal(t, "3.20 £", *got.CoffeePrice)
	assert.Equal(t, author.ID, *got.AuthorID)

	alpha.Name = "Beta"
	assert.ErrorIs(t, repo.Update(ctx, alpha), ErrCafeNameTaken)

	missing := newCafe("Ghost", "Nowhere", author)
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestCafeRepository_Delete(t *testing.T) {
	repo, author := setupCafes(t)
	ctx := context.Background()

	alpha := newCafe("Alpha", "Shoreditch", author)
	require.NoError(t, repo.Create(ctx, alpha))

	require.NoError(t, repo.Delete(ctx, alpha.ID))
	_, err := repo.GetByID(ctx, alpha.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, alpha.ID), ErrNotFound)

	// Hard delete frees the name.
	require.NoError(t, repo.Create(ctx, newCafe("Alpha", "Shoreditch", author)))
}
