package main

import (
	"context"
	"log"

	"vidtube/internal/database"
	"vidtube/internal/domain"
	"vidtube/internal/pkg/password"
	"vidtube/internal/repository"
)

// Seeds a local sqlite database with a couple of accounts and videos for
// manual poking. Not meant for anything but development.
func main() {
	db, err := database.Connect("vidtube.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM watch_history")
	db.Exec("DELETE FROM subscriptions")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM videos")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	videos := repository.NewVideoRepository(db)
	subs := repository.NewSubscriptionRepository(db)

	hasher := password.NewHasher(password.DefaultCost)

	log.Println("Creating users...")
	ada := mustUser(ctx, users, hasher, "ada", "ada@example.com", "Ada Lovelace", "password123")
	grace := mustUser(ctx, users, hasher, "grace", "grace@example.com", "Grace Hopper", "password123")

	log.Println("Creating videos...")
	for _, v := range []*domain.Video{
		{OwnerID: ada.ID, Title: "Analytical Engines", Description: "Notes on computation", VideoURL: "/static/seed-analytical.mp4", ThumbnailURL: "/static/seed-analytical.jpg", Duration: 421, IsPublished: true},
		{OwnerID: ada.ID, Title: "Punch Cards 101", Description: "A beginner's tour", VideoURL: "/static/seed-punchcards.mp4", ThumbnailURL: "/static/seed-punchcards.jpg", Duration: 188, IsPublished: true},
		{OwnerID: grace.ID, Title: "Compilers from Scratch", Description: "How A-0 came to be", VideoURL: "/static/seed-compilers.mp4", ThumbnailURL: "/static/seed-compilers.jpg", Duration: 1290, IsPublished: true},
	} {
		if err := videos.Create(ctx, v); err != nil {
			log.Fatal("seed video:", err)
		}
	}

	if err := subs.Create(ctx, &domain.Subscription{SubscriberID: grace.ID, ChannelID: ada.ID}); err != nil {
		log.Fatal("seed subscription:", err)
	}

	log.Println("Done.")
}

func mustUser(ctx context.Context, users *repository.UserRepository, hasher *password.Hasher, username, email, fullName, plain string) *domain.User {
	hash, err := hasher.Hash(plain)
	if err != nil {
		log.Fatal("hash password:", err)
	}
	u := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		AvatarURL:    "/static/seed-avatar.png",
		PasswordHash: hash,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("seed user:", err)
	}
	return u
}
