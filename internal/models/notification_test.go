package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationToView_CommentProjection(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	postID, commentID := uint(7), uint(11)
	n := &Notification{
		ID:        3,
		Type:      NotificationComment,
		CreatorID: 2,
		Creator:   User{ID: 2, Name: "Bob", Username: "bob"},
		PostID:    &postID,
		Post:      &Post{ID: postID, Content: "hello", Image: "p.png"},
		CommentID: &commentID,
		Comment:   &Comment{ID: commentID, Content: "nice", CreatedAt: at},
		CreatedAt: at,
	}

	view := n.ToView()
	assert.Equal(t, NotificationComment, view.Type)
	assert.Equal(t, UserSummary{ID: 2, Name: "Bob", Username: "bob"}, view.Creator)
	assert.Equal(t, &NotificationPost{ID: postID, Content: "hello", Image: "p.png"}, view.Post)
	assert.Equal(t, &NotificationCommentRef{ID: commentID, Content: "nice", CreatedAt: at}, view.Comment)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"COMMENT"`)
	assert.Contains(t, string(raw), `"comment":{"id":11,"content":"nice"`)
}

func TestNotificationToView_FollowOmitsTargets(t *testing.T) {
	n := &Notification{ID: 1, Type: NotificationFollow, Creator: User{ID: 4, Username: "carol"}}

	view := n.ToView()
	assert.Nil(t, view.Post)
	assert.Nil(t, view.Comment)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"post"`)
	assert.NotContains(t, string(raw), `"comment"`)
}
