package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/socially/internal/models"
	"github.com/anonto42/socially/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotifications_NewestFirstWithProjections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	post := testutil.CreatePost(t, e.db, alice.ID, "hello world")

	_, err := e.follows.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = e.likes.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	comment, err := e.comments.CreateComment(ctx, bob.ID, post.ID, "first!")
	require.NoError(t, err)

	views := e.notifications.ListNotifications(ctx, alice.ID)
	require.Len(t, views, 3)

	assert.Equal(t, models.NotificationComment, views[0].Type)
	assert.Equal(t, "bob", views[0].Creator.Username)
	require.NotNil(t, views[0].Comment)
	assert.Equal(t, comment.ID, views[0].Comment.ID)
	assert.Equal(t, "first!", views[0].Comment.Content)
	require.NotNil(t, views[0].Post)
	assert.Equal(t, "hello world", views[0].Post.Content)

	assert.Equal(t, models.NotificationLike, views[1].Type)
	assert.Nil(t, views[1].Comment)

	assert.Equal(t, models.NotificationFollow, views[2].Type)
	assert.Nil(t, views[2].Post)

	assert.Empty(t, e.notifications.ListNotifications(ctx, bob.ID))
	assert.NotNil(t, e.notifications.ListNotifications(ctx, bob.ID))
}

func TestMarkRead_ScopedToRecipient(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	carol := testutil.CreateUser(t, e.db, "carol")

	_, err := e.follows.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = e.follows.ToggleFollow(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = e.follows.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	aliceNotes := e.notificationsFor(t, alice.ID)
	bobNotes := e.notificationsFor(t, bob.ID)
	require.Len(t, aliceNotes, 2)
	require.Len(t, bobNotes, 1)
	assert.EqualValues(t, 2, e.notifications.UnreadCount(ctx, alice.ID))

	// Bob cannot mark Alice's notifications.
	assert.EqualValues(t, 0, e.notifications.MarkRead(ctx, bob.ID, []uint{aliceNotes[0].ID}))

	// Unknown ids and other users' ids are skipped silently.
	n := e.notifications.MarkRead(ctx, alice.ID, []uint{aliceNotes[0].ID, aliceNotes[1].ID, bobNotes[0].ID, 9999})
	assert.EqualValues(t, 2, n)
	assert.EqualValues(t, 0, e.notifications.UnreadCount(ctx, alice.ID))
	assert.EqualValues(t, 1, e.notifications.UnreadCount(ctx, bob.ID))

	// Already read rows are not counted again.
	assert.EqualValues(t, 0, e.notifications.MarkRead(ctx, alice.ID, []uint{aliceNotes[0].ID}))
	assert.EqualValues(t, 0, e.notifications.MarkRead(ctx, alice.ID, nil))
	assert.Contains(t, e.pub.paths(), "/notifications")
}

func TestFeedListings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	first := testutil.CreatePost(t, e.db, alice.ID, "first")
	second := testutil.CreatePost(t, e.db, bob.ID, "second")
	third := testutil.CreatePost(t, e.db, alice.ID, "third")

	_, err := e.comments.CreateComment(ctx, bob.ID, first.ID, "c1")
	require.NoError(t, err)
	_, err = e.comments.CreateComment(ctx, alice.ID, first.ID, "c2")
	require.NoError(t, err)
	_, err = e.likes.ToggleLike(ctx, bob.ID, first.ID)
	require.NoError(t, err)
	_, err = e.likes.ToggleLike(ctx, bob.ID, third.ID)
	require.NoError(t, err)

	all := e.feed.ListPosts(ctx, Page{})
	require.Len(t, all, 3)
	assert.Equal(t, []uint{third.ID, second.ID, first.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	oldest := all[2]
	assert.Equal(t, "alice", oldest.Author.Username)
	require.Len(t, oldest.Comments, 2)
	assert.Equal(t, "c1", oldest.Comments[0].Content)
	assert.Equal(t, "bob", oldest.Comments[0].Author.Username)
	assert.Equal(t, models.PostCounts{Likes: 1, Comments: 2}, oldest.Counts)
	assert.Equal(t, []uint{bob.ID}, oldest.LikerIDs)

	page := e.feed.ListPosts(ctx, Page{BeforeID: third.ID, Limit: 1})
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)

	mine := e.feed.ListUserPosts(ctx, alice.ID)
	require.Len(t, mine, 2)
	assert.Equal(t, third.ID, mine[0].ID)

	liked := e.feed.ListLikedPosts(ctx, bob.ID)
	require.Len(t, liked, 2)
	assert.Equal(t, []uint{third.ID, first.ID}, []uint{liked[0].ID, liked[1].ID})

	assert.Empty(t, e.feed.ListLikedPosts(ctx, alice.ID))
}

func TestListPosts_CursorFollowsListingOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")

	// Ids disagree with creation times, and two posts share a timestamp.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	offsets := []time.Duration{3 * time.Hour, time.Hour, 5 * time.Hour, time.Hour, 2 * time.Hour}
	for i, off := range offsets {
		post := &models.Post{AuthorID: alice.ID, Content: fmt.Sprintf("post %d", i), CreatedAt: base.Add(off)}
		require.NoError(t, e.db.Omit("Author").Create(post).Error)
	}

	all := e.feed.ListPosts(ctx, Page{})
	require.Len(t, all, len(offsets))
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		assert.True(t, prev.CreatedAt.After(cur.CreatedAt) ||
			(prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID))
	}

	var paged []uint
	var cursor uint
	for {
		page := e.feed.ListPosts(ctx, Page{BeforeID: cursor, Limit: 1})
		if len(page) == 0 {
			break
		}
		require.Len(t, page, 1)
		paged = append(paged, page[0].ID)
		cursor = page[0].ID
		require.LessOrEqual(t, len(paged), len(offsets))
	}

	want := make([]uint, 0, len(all))
	for _, p := range all {
		want = append(want, p.ID)
	}
	assert.Equal(t, want, paged)

	// A deleted cursor post falls back to an id bound.
	assert.Len(t, e.feed.ListPosts(ctx, Page{BeforeID: 9999}), len(offsets))
}

func TestPageLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Page{}.limit())
	assert.Equal(t, 5, Page{Limit: 5}.limit())
	assert.Equal(t, MaxPageSize, Page{Limit: 10_000}.limit())
}

func TestListFollowSuggestions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	carol := testutil.CreateUser(t, e.db, "carol")
	dave := testutil.CreateUser(t, e.db, "dave")
	erin := testutil.CreateUser(t, e.db, "erin")

	_, err := e.follows.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = e.follows.ToggleFollow(ctx, carol.ID, dave.ID)
	require.NoError(t, err)

	got := e.feed.ListFollowSuggestions(ctx, alice.ID)
	require.Len(t, got, SuggestionLimit)
	ids := []uint{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []uint{carol.ID, dave.ID, erin.ID}, ids)
	assert.EqualValues(t, 1, got[1].FollowerCount)

	for _, s := range got {
		assert.NotEqual(t, alice.ID, s.ID)
		assert.NotEqual(t, bob.ID, s.ID)
	}
}

func TestProfiles(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	testutil.CreatePost(t, e.db, alice.ID, "one")
	testutil.CreatePost(t, e.db, alice.ID, "two")

	_, err := e.follows.ToggleFollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	profile, err := e.profiles.GetProfileByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.ID)
	assert.Equal(t, models.UserCounts{Followers: 1, Following: 0, Posts: 2}, profile.Counts)

	_, err = e.profiles.GetProfileByUsername(ctx, "nobody")
	assert.True(t, models.IsKind(err, models.KindNotFound))

	updated, err := e.profiles.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{
		Name:     "Alice L",
		Bio:      "  builder ",
		Location: "Lisbon",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice L", updated.Name)
	assert.Equal(t, "builder", updated.Bio)
	assert.Empty(t, updated.Website)
	assert.EqualValues(t, 2, updated.Counts.Posts)

	_, err = e.profiles.UpdateProfile(ctx, 999, models.UpdateProfileRequest{Name: "ghost"})
	assert.True(t, models.IsKind(err, models.KindNotFound))
}
