package comment

import (
	"context"
	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/recipe"
	"strings"
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

func newTestService(t *testing.T) (CommentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCommentService(NewCommentRepository(db), recipe.NewRecipeRepository(db)), db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *entities.User {
	t.Helper()
	user := entities.User{ID: uuid.New(), Name: "Commenter", Email: "c@example.com", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createPublishedRecipe(t *testing.T, db *gorm.DB, owner *entities.User) *entities.Recipe {
	t.Helper()
	rec := entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: "Gado Gado", Status: entities.RecipeStatusPublished}
	require.NoError(t, db.Create(&rec).Error)
	return &rec
}

func actorFor(user *entities.User) domain.Actor {
	return domain.Actor{UserID: user.ID.String(), Role: user.Role}
}

func TestPostComment_TopLevel(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, user)

	res, err := service.PostComment(context.Background(), rec.ID.String(), domain.PostCommentRequest{
		Content: "  looks delicious  ",
	}, actorFor(user))
	require.NoError(t, err)
	assert.Equal(t, "looks delicious", res.Content)
	assert.Empty(t, res.ParentID)
	assert.NotEmpty(t, res.ID)
}

func TestPostComment_Validation(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	cases := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t "},
		{"too long", strings.Repeat("a", domain.MaxCommentLength+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{Content: tc.content}, actorFor(user))
			assert.ErrorIs(t, err, domain.ErrInvalidContent)
		})
	}

	var count int64
	require.NoError(t, db.Model(&entities.Comment{}).Count(&count).Error)
	assert.Zero(t, count, "no rows may be written for rejected comments")
}

func TestPostComment_UnknownRecipe(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, domain.RoleUser)

	_, err := service.PostComment(context.Background(), uuid.NewString(), domain.PostCommentRequest{Content: "hi"}, actorFor(user))
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestPostComment_UnknownParent(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, user)

	_, err := service.PostComment(context.Background(), rec.ID.String(), domain.PostCommentRequest{
		ParentID: uuid.NewString(),
		Content:  "reply to nothing",
	}, actorFor(user))
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

// TestPostComment_CrossRecipeParent verifies a reply can never thread
// under a comment from another recipe, and that the failure writes
// nothing.
func TestPostComment_CrossRecipeParent(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, domain.RoleUser)
	recA := createPublishedRecipe(t, db, user)
	recB := createPublishedRecipe(t, db, user)
	ctx := context.Background()

	onA, err := service.PostComment(ctx, recA.ID.String(), domain.PostCommentRequest{Content: "on A"}, actorFor(user))
	require.NoError(t, err)

	_, err = service.PostComment(ctx, recB.ID.String(), domain.PostCommentRequest{
		ParentID: onA.ID,
		Content:  "threading across recipes",
	}, actorFor(user))
	assert.ErrorIs(t, err, domain.ErrCrossRecipeParent)

	var count int64
	require.NoError(t, db.Model(&entities.Comment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEditComment_Authorization(t *testing.T) {
	service, db := newTestService(t)
	author := createTestUser(t, db, domain.RoleUser)
	stranger := createTestUser(t, db, domain.RoleUser)
	admin := createTestUser(t, db, domain.RoleAdmin)
	rec := createPublishedRecipe(t, db, author)
	ctx := context.Background()

	posted, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{Content: "original"}, actorFor(author))
	require.NoError(t, err)

	_, err = service.EditComment(ctx, posted.ID, domain.EditCommentRequest{Content: "defaced"}, actorFor(stranger))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	edited, err := service.EditComment(ctx, posted.ID, domain.EditCommentRequest{Content: "fixed typo"}, actorFor(author))
	require.NoError(t, err)
	assert.Equal(t, "fixed typo", edited.Content)
	assert.Equal(t, posted.CreatedAt.Unix(), edited.CreatedAt.Unix(), "edit must not touch created_at")

	moderated, err := service.EditComment(ctx, posted.ID, domain.EditCommentRequest{Content: "[moderated]"}, actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, "[moderated]", moderated.Content)
}

func TestEditComment_DeletedIsGone(t *testing.T) {
	service, db := newTestService(t)
	author := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, author)
	ctx := context.Background()

	posted, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{Content: "temp"}, actorFor(author))
	require.NoError(t, err)
	require.NoError(t, service.DeleteComment(ctx, posted.ID, actorFor(author)))

	_, err = service.EditComment(ctx, posted.ID, domain.EditCommentRequest{Content: "resurrect"}, actorFor(author))
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	err = service.DeleteComment(ctx, posted.ID, actorFor(author))
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

// TestDeleteComment_KeepsReplies tombstones a parent and checks the
// thread keeps its shape: the node stays, content is blanked, replies and
// the reply count survive.
func TestDeleteComment_KeepsReplies(t *testing.T) {
	service, db := newTestService(t)
	u1 := createTestUser(t, db, domain.RoleUser)
	u2 := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, u1)
	ctx := context.Background()

	c1, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{Content: "parent"}, actorFor(u1))
	require.NoError(t, err)
	c2, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{ParentID: c1.ID, Content: "child"}, actorFor(u2))
	require.NoError(t, err)

	require.NoError(t, service.DeleteComment(ctx, c1.ID, actorFor(u1)))

	thread, err := service.ListThread(ctx, rec.ID.String(), domain.Actor{})
	require.NoError(t, err)
	require.Len(t, thread, 1)

	root := thread[0]
	assert.Equal(t, c1.ID, root.ID)
	assert.True(t, root.Deleted)
	assert.Empty(t, root.Content, "tombstone content must be hidden")
	assert.Equal(t, 1, root.ReplyCount)
	require.Len(t, root.Replies, 1)
	assert.Equal(t, c2.ID, root.Replies[0].ID)
	assert.Equal(t, "child", root.Replies[0].Content)
}

// TestListThread_NestingAndOrder covers the C1/C2 shape from two users
// plus ordering at each level.
func TestListThread_NestingAndOrder(t *testing.T) {
	service, db := newTestService(t)
	u1 := createTestUser(t, db, domain.RoleUser)
	u2 := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, u1)
	ctx := context.Background()

	c1, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{Content: "first"}, actorFor(u1))
	require.NoError(t, err)
	c2, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{ParentID: c1.ID, Content: "reply"}, actorFor(u2))
	require.NoError(t, err)
	c3, err := service.PostComment(ctx, rec.ID.String(), domain.PostCommentRequest{Content: "second"}, actorFor(u2))
	require.NoError(t, err)

	thread, err := service.ListThread(ctx, rec.ID.String(), domain.Actor{})
	require.NoError(t, err)
	require.Len(t, thread, 2)

	assert.Equal(t, c1.ID, thread[0].ID)
	assert.Equal(t, 1, thread[0].ReplyCount)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, c2.ID, thread[0].Replies[0].ID)

	assert.Equal(t, c3.ID, thread[1].ID)
	assert.Zero(t, thread[1].ReplyCount)
	assert.Empty(t, thread[1].Replies)
}

func TestListThread_InvisibleRecipe(t *testing.T) {
	service, db := newTestService(t)
	owner := createTestUser(t, db, domain.RoleUser)
	rec := entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: "Secret", Status: entities.RecipeStatusDraft}
	require.NoError(t, db.Create(&rec).Error)

	_, err := service.ListThread(context.Background(), rec.ID.String(), domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	// the owner can read their own thread while drafting
	_, err = service.ListThread(context.Background(), rec.ID.String(), actorFor(owner))
	assert.NoError(t, err)
}

// TestUpdateCommentContent_Tombstoned covers the delete landing between
// the service's read and the guarded update: zero rows must report
// not-found, never silent success.
func TestUpdateCommentContent_Tombstoned(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, user)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	posted := entities.Comment{ID: uuid.New(), RecipeID: rec.ID, UserID: user.ID, Content: "live"}
	require.NoError(t, repo.CreateComment(ctx, &posted))
	require.NoError(t, repo.SoftDeleteComment(ctx, posted.ID.String()))

	err := repo.UpdateCommentContent(ctx, posted.ID.String(), "necro edit")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	fresh, err := repo.GetCommentByID(ctx, posted.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "live", fresh.Content)
}

// TestGetRecipeComments_StableOrder pins sibling order for equal
// timestamps: the id breaks the tie.
func TestGetRecipeComments_StableOrder(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, user)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := entities.Comment{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), RecipeID: rec.ID, UserID: user.ID, Content: "a"}
	second := entities.Comment{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), RecipeID: rec.ID, UserID: user.ID, Content: "b"}
	first.CreatedAt = ts
	second.CreatedAt = ts

	// inserted out of order on purpose
	require.NoError(t, repo.CreateComment(ctx, &second))
	require.NoError(t, repo.CreateComment(ctx, &first))

	comments, err := repo.GetRecipeComments(ctx, rec.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
}

func TestPostComment_Anonymous(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, domain.RoleUser)
	rec := createPublishedRecipe(t, db, user)

	_, err := service.PostComment(context.Background(), rec.ID.String(), domain.PostCommentRequest{Content: "anon"}, domain.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
