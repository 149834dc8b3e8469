package engagement

import (
	"context"
	"errors"
	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/recipe"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Recipe{},
		&entities.Comment{},
		&entities.RecipeLike{},
		&entities.RecipeFavorite{},
		&entities.RecipeView{},
	))
	return db
}

func newTestService(t *testing.T, cooldown time.Duration) (EngagementService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewEngagementService(NewEngagementRepository(db), recipe.NewRecipeRepository(db), cooldown), db
}

func createTestUser(t *testing.T, db *gorm.DB) *entities.User {
	t.Helper()
	user := entities.User{ID: uuid.New(), Name: "Viewer", Email: "v@example.com", Role: domain.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPublishedRecipe(t *testing.T, db *gorm.DB, owner *entities.User) *entities.Recipe {
	t.Helper()
	rec := entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: "Soto Ayam", Status: entities.RecipeStatusPublished}
	require.NoError(t, db.Create(&rec).Error)
	return &rec
}

func actorFor(user *entities.User) domain.Actor {
	return domain.Actor{UserID: user.ID.String(), Role: user.Role}
}

// TestToggleLike_Alternates flips the same user's like repeatedly and
// checks the state and the derived total alternate in lockstep.
func TestToggleLike_Alternates(t *testing.T) {
	service, db := newTestService(t, 0)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		res, err := service.ToggleLike(ctx, rec.ID.String(), actorFor(user))
		require.NoError(t, err)
		liked := i%2 == 0
		assert.Equal(t, liked, res.Liked, "toggle %d", i)
		if liked {
			assert.EqualValues(t, 1, res.TotalLikes)
		} else {
			assert.Zero(t, res.TotalLikes)
		}
	}

	var rows int64
	require.NoError(t, db.Model(&entities.RecipeLike{}).Count(&rows).Error)
	assert.Zero(t, rows, "an even number of toggles leaves no row behind")
}

func TestToggleLike_TotalsAcrossUsers(t *testing.T) {
	service, db := newTestService(t, 0)
	u1 := createTestUser(t, db)
	u2 := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, u1)
	ctx := context.Background()

	_, err := service.ToggleLike(ctx, rec.ID.String(), actorFor(u1))
	require.NoError(t, err)

	res, err := service.ToggleLike(ctx, rec.ID.String(), actorFor(u2))
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 2, res.TotalLikes)

	res, err = service.ToggleLike(ctx, rec.ID.String(), actorFor(u1))
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.EqualValues(t, 1, res.TotalLikes)
}

// TestToggleFavorite_IndependentOfLike makes sure the two toggles never
// bleed into each other.
func TestToggleFavorite_IndependentOfLike(t *testing.T) {
	service, db := newTestService(t, 0)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	likeRes, err := service.ToggleLike(ctx, rec.ID.String(), actorFor(user))
	require.NoError(t, err)
	require.True(t, likeRes.Liked)

	favRes, err := service.ToggleFavorite(ctx, rec.ID.String(), actorFor(user))
	require.NoError(t, err)
	assert.True(t, favRes.Favorited)
	assert.EqualValues(t, 1, favRes.TotalFavorites)

	favRes, err = service.ToggleFavorite(ctx, rec.ID.String(), actorFor(user))
	require.NoError(t, err)
	assert.False(t, favRes.Favorited)
	assert.Zero(t, favRes.TotalFavorites)

	stats, err := service.RecipeStats(ctx, rec.ID.String(), actorFor(user))
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Likes, "like must survive the favorite toggles")
	assert.Zero(t, stats.Favorites)
}

func TestToggle_RequiresAuthentication(t *testing.T) {
	service, db := newTestService(t, 0)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	_, err := service.ToggleLike(ctx, rec.ID.String(), domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = service.ToggleFavorite(ctx, rec.ID.String(), domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestToggleLike_InvisibleRecipe(t *testing.T) {
	service, db := newTestService(t, 0)
	owner := createTestUser(t, db)
	stranger := createTestUser(t, db)
	rec := entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: "Draft", Status: entities.RecipeStatusDraft}
	require.NoError(t, db.Create(&rec).Error)

	_, err := service.ToggleLike(context.Background(), rec.ID.String(), actorFor(stranger))
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = service.ToggleLike(context.Background(), uuid.NewString(), actorFor(stranger))
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

// TestRecordView_CooldownDedup fires ten rapid views from the same user
// and expects one counted view but ten logged rows.
func TestRecordView_CooldownDedup(t *testing.T) {
	service, db := newTestService(t, time.Hour)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		res, err := service.RecordView(ctx, rec.ID.String(), "203.0.113.7", actorFor(user))
		require.NoError(t, err)
		assert.Equal(t, i == 0, res.CountedTowardPopularity, "view %d", i)
	}

	stats, err := service.RecipeStats(ctx, rec.ID.String(), actorFor(user))
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.Views)
	assert.EqualValues(t, 1, stats.CountedViews)
}

func TestRecordView_CooldownExpiry(t *testing.T) {
	service, db := newTestService(t, 50*time.Millisecond)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	first, err := service.RecordView(ctx, rec.ID.String(), "203.0.113.7", actorFor(user))
	require.NoError(t, err)
	assert.True(t, first.CountedTowardPopularity)

	second, err := service.RecordView(ctx, rec.ID.String(), "203.0.113.7", actorFor(user))
	require.NoError(t, err)
	assert.False(t, second.CountedTowardPopularity)

	time.Sleep(60 * time.Millisecond)

	third, err := service.RecordView(ctx, rec.ID.String(), "203.0.113.7", actorFor(user))
	require.NoError(t, err)
	assert.True(t, third.CountedTowardPopularity, "a view after the window counts again")
}

// TestRecordView_AnonymousByIP deduplicates anonymous viewers on their
// client address instead of a user id.
func TestRecordView_AnonymousByIP(t *testing.T) {
	service, db := newTestService(t, time.Hour)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	res, err := service.RecordView(ctx, rec.ID.String(), "198.51.100.1", domain.Actor{})
	require.NoError(t, err)
	assert.True(t, res.CountedTowardPopularity)

	res, err = service.RecordView(ctx, rec.ID.String(), "198.51.100.1", domain.Actor{})
	require.NoError(t, err)
	assert.False(t, res.CountedTowardPopularity, "same address inside the window")

	res, err = service.RecordView(ctx, rec.ID.String(), "198.51.100.2", domain.Actor{})
	require.NoError(t, err)
	assert.True(t, res.CountedTowardPopularity, "a different address is a different viewer")
}

func TestRecordView_UserAndIPAreSeparateIdentities(t *testing.T) {
	service, db := newTestService(t, time.Hour)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	res, err := service.RecordView(ctx, rec.ID.String(), "198.51.100.9", domain.Actor{})
	require.NoError(t, err)
	assert.True(t, res.CountedTowardPopularity)

	// the same address, now authenticated, dedups on the user id
	res, err = service.RecordView(ctx, rec.ID.String(), "198.51.100.9", actorFor(user))
	require.NoError(t, err)
	assert.True(t, res.CountedTowardPopularity)
}

// flakyEngagementRepository fails the first n ToggleLike calls with the
// configured error, then delegates to the real repository.
type flakyEngagementRepository struct {
	EngagementRepository
	failures int
	err      error
	calls    int
}

func (r *flakyEngagementRepository) ToggleLike(ctx context.Context, recipeID, userID uuid.UUID) (bool, int64, error) {
	r.calls++
	if r.failures > 0 {
		r.failures--
		return false, 0, r.err
	}
	return r.EngagementRepository.ToggleLike(ctx, recipeID, userID)
}

// TestToggleLike_RetriesConflictOnce covers the lost insert race: the
// first attempt fails with a conflict, the retry lands as a clean toggle.
func TestToggleLike_RetriesConflictOnce(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)

	flaky := &flakyEngagementRepository{
		EngagementRepository: NewEngagementRepository(db),
		failures:             1,
		err:                  errors.New("UNIQUE constraint failed: recipe_likes.recipe_id, recipe_likes.user_id"),
	}
	service := NewEngagementService(flaky, recipe.NewRecipeRepository(db), 0)

	res, err := service.ToggleLike(context.Background(), rec.ID.String(), actorFor(user))
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.TotalLikes)
	assert.Equal(t, 2, flaky.calls)
}

func TestToggleLike_ConflictTwiceSurfaces(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)

	flaky := &flakyEngagementRepository{
		EngagementRepository: NewEngagementRepository(db),
		failures:             2,
		err:                  errors.New("could not serialize access due to concurrent update"),
	}
	service := NewEngagementService(flaky, recipe.NewRecipeRepository(db), 0)

	_, err := service.ToggleLike(context.Background(), rec.ID.String(), actorFor(user))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, 2, flaky.calls, "one retry, not a loop")
}

func TestRecipeStats_Empty(t *testing.T) {
	service, db := newTestService(t, 0)
	user := createTestUser(t, db)
	rec := createPublishedRecipe(t, db, user)

	stats, err := service.RecipeStats(context.Background(), rec.ID.String(), domain.Actor{})
	require.NoError(t, err)
	assert.Zero(t, stats.Likes)
	assert.Zero(t, stats.Favorites)
	assert.Zero(t, stats.Views)
	assert.Zero(t, stats.CountedViews)
}
