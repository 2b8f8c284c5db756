package services

import (
	"context"
	"strings"
	"testing"

	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")

	post, err := e.posts.CreatePost(ctx, alice.ID, "  hi there  ", "")
	require.NoError(t, err)
	assert.Equal(t, "hi there", post.Content)
	assert.Equal(t, alice.ID, post.AuthorID)

	imageOnly, err := e.posts.CreatePost(ctx, alice.ID, "", "https://img.example.com/a.png")
	require.NoError(t, err)
	assert.Empty(t, imageOnly.Content)

	_, err = e.posts.CreatePost(ctx, alice.ID, "   ", "")
	assert.True(t, models.IsKind(err, models.KindValidation))
	assert.EqualValues(t, 2, e.count(t, &models.Post{}, ""))
	assert.Contains(t, e.pub.paths(), "/profile/alice")
}

func TestUpdatePost(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	post := testutil.CreatePost(t, e.db, alice.ID, "draft")

	_, err := e.posts.UpdatePost(ctx, bob.ID, post.ID, "hijack")
	assert.True(t, models.IsKind(err, models.KindUnauthorized))

	_, err = e.posts.UpdatePost(ctx, alice.ID, 999, "x")
	assert.True(t, models.IsKind(err, models.KindNotFound))

	_, err = e.posts.UpdatePost(ctx, alice.ID, post.ID, " ")
	assert.True(t, models.IsKind(err, models.KindValidation))

	updated, err := e.posts.UpdatePost(ctx, alice.ID, post.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	stored, err := e.store.Posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.Content)
}

func TestDeletePost_CascadesEverythingReferencingIt(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	carol := testutil.CreateUser(t, e.db, "carol")
	post := testutil.CreatePost(t, e.db, alice.ID, "doomed")
	other := testutil.CreatePost(t, e.db, alice.ID, "survivor")

	_, err := e.likes.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	_, err = e.comments.CreateComment(ctx, carol.ID, post.ID, "nice")
	require.NoError(t, err)
	_, err = e.likes.ToggleLike(ctx, bob.ID, other.ID)
	require.NoError(t, err)
	_, err = e.follows.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, e.notificationsFor(t, alice.ID), 4)

	err = e.posts.DeletePost(ctx, bob.ID, post.ID)
	assert.True(t, models.IsKind(err, models.KindUnauthorized))
	assert.EqualValues(t, 2, e.count(t, &models.Post{}, ""))

	require.NoError(t, e.posts.DeletePost(ctx, alice.ID, post.ID))

	assert.EqualValues(t, 0, e.count(t, &models.Post{}, "id = ?", post.ID))
	assert.EqualValues(t, 0, e.count(t, &models.Like{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 0, e.count(t, &models.Comment{}, "post_id = ?", post.ID))
	assert.EqualValues(t, 0, e.count(t, &models.Notification{}, "post_id = ?", post.ID))

	remaining := e.notificationsFor(t, alice.ID)
	require.Len(t, remaining, 2)
	assert.Equal(t, models.NotificationLike, remaining[0].Type)
	assert.Equal(t, other.ID, *remaining[0].PostID)
	assert.Equal(t, models.NotificationFollow, remaining[1].Type)
	assert.EqualValues(t, 1, e.count(t, &models.Like{}, "post_id = ?", other.ID))

	err = e.posts.DeletePost(ctx, alice.ID, post.ID)
	assert.True(t, models.IsKind(err, models.KindNotFound))
}

func TestCreateComment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	post := testutil.CreatePost(t, e.db, alice.ID, "talk to me")

	comment, err := e.comments.CreateComment(ctx, bob.ID, post.ID, " hey ")
	require.NoError(t, err)
	assert.Equal(t, "hey", comment.Content)

	notes := e.notificationsFor(t, alice.ID)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationComment, notes[0].Type)
	require.NotNil(t, notes[0].PostID)
	require.NotNil(t, notes[0].CommentID)
	assert.Equal(t, post.ID, *notes[0].PostID)
	assert.Equal(t, comment.ID, *notes[0].CommentID)

	_, err = e.comments.CreateComment(ctx, alice.ID, post.ID, "thanks")
	require.NoError(t, err)
	assert.Len(t, e.notificationsFor(t, alice.ID), 1)
}

func TestCreateComment_Rejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	post := testutil.CreatePost(t, e.db, alice.ID, "p")

	_, err := e.comments.CreateComment(ctx, alice.ID, post.ID, "  ")
	assert.True(t, models.IsKind(err, models.KindValidation))

	_, err = e.comments.CreateComment(ctx, alice.ID, post.ID, strings.Repeat("x", 501))
	assert.True(t, models.IsKind(err, models.KindValidation))

	_, err = e.comments.CreateComment(ctx, alice.ID, 999, "orphan")
	assert.True(t, models.IsKind(err, models.KindNotFound))

	assert.EqualValues(t, 0, e.count(t, &models.Comment{}, ""))
	assert.EqualValues(t, 0, e.count(t, &models.Notification{}, ""))
}

func TestCreateComment_FailureRollsBackComment(t *testing.T) {
	e := newEnv(t)
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	post := testutil.CreatePost(t, e.db, alice.ID, "atomic")

	// The notification insert fails after the comment row is written.
	require.NoError(t, e.db.Migrator().DropTable(&models.Notification{}))

	comment, err := e.comments.CreateComment(context.Background(), bob.ID, post.ID, "lost")
	require.Error(t, err)
	assert.Nil(t, comment)
	assert.True(t, models.IsKind(err, models.KindStorage))
	assert.EqualValues(t, 0, e.count(t, &models.Comment{}, ""))
	assert.Empty(t, e.pub.calls)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	post := testutil.CreatePost(t, e.db, alice.ID, "p")

	comment, err := e.comments.CreateComment(ctx, bob.ID, post.ID, "first")
	require.NoError(t, err)

	_, err = e.comments.UpdateComment(ctx, alice.ID, comment.ID, "edited by someone else")
	assert.True(t, models.IsKind(err, models.KindUnauthorized))

	updated, err := e.comments.UpdateComment(ctx, bob.ID, comment.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Content)

	err = e.comments.DeleteComment(ctx, alice.ID, comment.ID)
	assert.True(t, models.IsKind(err, models.KindUnauthorized))

	require.NoError(t, e.comments.DeleteComment(ctx, bob.ID, comment.ID))
	assert.EqualValues(t, 0, e.count(t, &models.Comment{}, ""))
	assert.EqualValues(t, 0, e.count(t, &models.Notification{}, "comment_id = ?", comment.ID))
	assert.EqualValues(t, 1, e.count(t, &models.Post{}, ""))

	err = e.comments.DeleteComment(ctx, bob.ID, comment.ID)
	assert.True(t, models.IsKind(err, models.KindNotFound))
}
