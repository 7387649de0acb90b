// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"time"

	"ripple/internal/models"
)

// UserRef is the minimal user shape embedded in read-side projections.
type UserRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// UserSummary is the directory projection for a user, including the id lists
// of who follows them and who they follow.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FollowersCount []uint `json:"followersCount"`
	FollowingCount []uint `json:"followingCount"`
}

// CommentView is the projection of a comment inside a PostView.
type CommentView struct {
	User UserRef `json:"user"`
	Text string  `json:"text"`
}

// PostView is the read-side projection of a post with usernames resolved.
type PostView struct {
	ID        uint          `json:"id"`
	Content   string        `json:"content"`
	User      UserRef       `json:"user"`
	Likes     []UserRef     `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"created_at"`
}

// MessageView is the projection of a single chat message.
type MessageView struct {
	ID        uint      `json:"id"`
	Sender    UserRef   `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationView is the projection of a notification with the sender resolved.
type NotificationView struct {
	ID        uint      `json:"id"`
	Kind      string    `json:"type"`
	Sender    UserRef   `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func userRef(u models.User) UserRef {
	return UserRef{ID: u.ID, Username: u.Username}
}

func postView(p *models.Post) PostView {
	likes := make([]UserRef, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, userRef(l.User))
	}
	comments := make([]CommentView, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentView{User: userRef(c.User), Text: c.Text})
	}
	return PostView{
		ID:        p.ID,
		Content:   p.Content,
		User:      userRef(p.User),
		Likes:     likes,
		Comments:  comments,
		CreatedAt: p.CreatedAt,
	}
}

func messageViews(messages []models.Message) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, MessageView{
			ID:        m.ID,
			Sender:    userRef(m.Sender),
			Message:   m.Content,
			Timestamp: m.CreatedAt,
		})
	}
	return views
}

func notificationViews(notifications []models.Notification) []NotificationView {
	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NotificationView{
			ID:        n.ID,
			Kind:      n.Kind,
			Sender:    userRef(n.Sender),
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		})
	}
	return views
}
