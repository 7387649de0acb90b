// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the shared password for all seeded users.
const DemoPassword = "password123"

// Seeder populates the database with a believable social mesh: users,
// follow edges, posts with likes and comments, chats and notifications.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes every seeded table. Only meant for development databases.
func (s *Seeder) ClearAll() error {
	tables := []string{"notifications", "messages", "chats", "likes", "comments", "posts", "follows", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n users with unique usernames and the demo password.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		users = append(users, models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hash),
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedFollows creates a sparse random follow mesh over the users.
func (s *Seeder) SeedFollows(users []models.User) error {
	var follows []models.Follow
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID {
				continue
			}
			// ~15% edge density keeps feeds lively without full saturation
			if s.rand.Float64() < 0.15 {
				follows = append(follows, models.Follow{
					FollowerID: follower.ID,
					FolloweeID: followee.ID,
				})
			}
		}
	}
	if len(follows) == 0 {
		return nil
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&follows, 200).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d follow edges", len(follows))
	return nil
}

// SeedPosts creates n posts with random authors, likes and comments.
func (s *Seeder) SeedPosts(users []models.User, n int) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to attribute posts to")
	}

	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := models.Post{
			Content: gofakeit.Sentence(8 + s.rand.Intn(12)),
			UserID:  author.ID,
		}
		if err := s.db.Create(&post).Error; err != nil {
			return err
		}

		for _, u := range users {
			if u.ID != author.ID && s.rand.Float64() < 0.2 {
				like := models.Like{UserID: u.ID, PostID: post.ID}
				if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
					return err
				}
			}
		}

		comments := s.rand.Intn(4)
		for j := 0; j < comments; j++ {
			commenter := users[s.rand.Intn(len(users))]
			comment := models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(4 + s.rand.Intn(8)),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	log.Printf("Seeded %d posts", n)
	return nil
}

// SeedChats starts a short conversation between random user pairs.
func (s *Seeder) SeedChats(users []models.User, pairs int) error {
	if len(users) < 2 {
		return nil
	}

	for i := 0; i < pairs; i++ {
		a := users[s.rand.Intn(len(users))]
		b := users[s.rand.Intn(len(users))]
		if a.ID == b.ID {
			continue
		}

		low, high := models.NormalizePair(a.ID, b.ID)
		chat := models.Chat{UserLowID: low, UserHighID: high}
		if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chat).Error; err != nil {
			return err
		}
		if chat.ID == 0 {
			// Pair already chatted, skip
			continue
		}

		turns := 2 + s.rand.Intn(6)
		sender, receiver := a, b
		for j := 0; j < turns; j++ {
			message := models.Message{
				ChatID:   chat.ID,
				SenderID: sender.ID,
				Content:  gofakeit.Sentence(3 + s.rand.Intn(10)),
			}
			if err := s.db.Create(&message).Error; err != nil {
				return err
			}
			notification := models.Notification{
				Kind:       models.NotificationKindMessage,
				SenderID:   sender.ID,
				ReceiverID: receiver.ID,
				Content:    fmt.Sprintf("%s messaged you.", sender.Username),
			}
			if err := s.db.Create(&notification).Error; err != nil {
				return err
			}
			sender, receiver = receiver, sender
		}
	}
	log.Printf("Seeded chats for up to %d pairs", pairs)
	return nil
}
