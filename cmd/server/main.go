package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/pixelgram/configs"
	"github.com/maheshrc27/pixelgram/internal/api/handlers"
	"github.com/maheshrc27/pixelgram/internal/api/middleware"
	job "github.com/maheshrc27/pixelgram/internal/jobs"
	"github.com/maheshrc27/pixelgram/internal/mailer"
	"github.com/maheshrc27/pixelgram/internal/queue"
	"github.com/maheshrc27/pixelgram/internal/repository"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer redisClient.Close()

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	followerRepo := repository.NewFollowerRepository(db)
	postRepo := repository.NewPostRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	otpRepo := repository.NewOTPRepository(redisClient)

	mediaService := service.NewMediaService(*cfg)
	authService := service.NewAuthService(*cfg, db, userRepo, profileRepo, otpRepo)
	userService := service.NewUserService(userRepo)
	profileService := service.NewProfileService(profileRepo, followerRepo)
	postService := service.NewPostService(db, postRepo, profileRepo, followerRepo, likeRepo, commentRepo, mediaService)
	storyService := service.NewStoryService(storyRepo, profileRepo, followerRepo, likeRepo, commentRepo, mediaService)
	commentService := service.NewCommentService(commentRepo, profileRepo, followerRepo)
	likeService := service.NewLikeService(db, likeRepo, postRepo, storyRepo, commentRepo, profileRepo, followerRepo)
	messageService := service.NewMessageService(messageRepo, profileRepo, followerRepo, postRepo, storyRepo, mediaService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, authService)

	auth := handlers.NewAuthHandler(*cfg, authService, client)
	app.Post("/auth/otp", auth.RequestOTP)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/logout", authMiddleware.OptionalAuthMiddleware(), auth.Logout)
	app.Get("/login/google", auth.GoogleLogin)
	app.Get("/login/google/callback", auth.GoogleLoginCallback)

	api := app.Group("/api")

	// Listings and reads go through the optional middleware so
	// anonymous requests reach the visibility rules instead of being
	// turned away at the router.
	public := api.Group("", authMiddleware.OptionalAuthMiddleware())
	private := api.Group("", authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(*cfg, userService)
	private.Get("/user/info", user.UserInfo)
	private.Delete("/user", user.RemoveUser)

	profile := handlers.NewProfileHandler(profileService)
	public.Get("/profiles/search", profile.Search)
	public.Get("/profiles/:id", profile.GetProfile)
	private.Patch("/profiles/:id", profile.UpdateProfile)
	public.Get("/profiles/:id/followers", profile.ListFollowers)
	public.Get("/profiles/:id/followings", profile.ListFollowings)
	private.Post("/profiles/:id/follow", profile.Follow)
	private.Delete("/profiles/:id/follow", profile.Unfollow)

	message := handlers.NewMessageHandler(messageService)
	private.Post("/profiles/:id/messages", message.SendMessage)
	private.Get("/profiles/:id/messages", message.ListConversation)
	private.Patch("/messages/:id", message.UpdateMessage)
	private.Delete("/messages/:id", message.RemoveMessage)

	post := handlers.NewPostHandler(postService, likeService)
	public.Get("/posts", post.ListPosts)
	private.Post("/posts", post.CreatePost)
	public.Get("/posts/:id", post.GetPost)
	private.Patch("/posts/:id", post.UpdatePost)
	private.Delete("/posts/:id", post.RemovePost)
	public.Get("/posts/:id/likes", post.ListLikes)
	private.Post("/posts/:id/like", post.ToggleLike)
	public.Get("/posts/:id/comments", post.ListComments)
	private.Post("/posts/:id/comments", post.AddComment)

	story := handlers.NewStoryHandler(storyService, likeService)
	public.Get("/stories", story.ListStories)
	private.Post("/stories", story.CreateStory)
	public.Get("/stories/:id", story.GetStory)
	private.Delete("/stories/:id", story.RemoveStory)
	public.Get("/stories/:id/likes", story.ListLikes)
	private.Post("/stories/:id/like", story.ToggleLike)
	public.Get("/stories/:id/comments", story.ListComments)
	private.Post("/stories/:id/comments", story.AddComment)
	private.Post("/stories/:id/message", message.SendStoryMessage)

	comment := handlers.NewCommentHandler(commentService, likeService)
	private.Patch("/comments/:id", comment.UpdateComment)
	private.Delete("/comments/:id", comment.RemoveComment)
	private.Post("/comments/:id/like", comment.ToggleLike)

	// cron jobs
	counterRepairJob := job.NewCounterRepairJob(likeRepo)

	//queue
	queueW := queue.NewQueue(mailer.NewMailer(*cfg))

	c := cron.New()
	c.AddFunc("@every 00h10m00s", counterRepairJob.RepairCounters)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeSendOTP, queueW.HandleSendOTPTask)
		mux.HandleFunc(queue.TaskTypeSendWelcome, queueW.HandleSendWelcomeTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
