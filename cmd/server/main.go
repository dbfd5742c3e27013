// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/MarcusGasberg/somemellier/internal/controller"
	"github.com/MarcusGasberg/somemellier/internal/db"
	"github.com/MarcusGasberg/somemellier/internal/middleware"
	"github.com/MarcusGasberg/somemellier/internal/queue"
	"github.com/MarcusGasberg/somemellier/internal/repository"
	"github.com/MarcusGasberg/somemellier/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	channelRepo := &repository.ChannelRepository{DB: conn}
	userChannelRepo := &repository.UserChannelRepository{DB: conn}
	postRepo := &repository.PostRepository{DB: conn}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		PostRepo:     postRepo,
	}
	channelService := &service.ChannelService{
		ChannelRepo:     channelRepo,
		UserChannelRepo: userChannelRepo,
	}
	postService := &service.PostService{
		PostRepo: postRepo,
	}

	// Delivery path: RabbitMQ + cmd/worker when AMQP_URL is set, otherwise an
	// in-process subscriber.
	scheduler := &service.PublishScheduler{PostRepo: postRepo}
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		publisher, err := queue.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		defer publisher.Close()
		scheduler.Publisher = publisher
	} else {
		q := queue.NewInMemoryQueue()
		queue.StartPostPublishSubscriber(q, postRepo)
		scheduler.Queue = q
	}
	go scheduler.Run(context.Background())

	campaignController := &controller.CampaignController{CampaignService: campaignService}
	channelController := &controller.ChannelController{ChannelService: channelService}
	postController := &controller.PostController{PostService: postService}

	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth())

		r.Get("/campaigns", campaignController.GetCampaigns)
		r.Post("/campaigns", campaignController.CreateCampaign)
		r.Put("/campaigns", campaignController.UpdateCampaign)
		r.Delete("/campaigns", campaignController.DeleteCampaign)

		r.Get("/channels", channelController.ListChannels)
		r.Get("/user-channels", channelController.ListUserChannels)
		r.Post("/user-channels", channelController.ConnectChannel)

		r.Get("/posts", postController.ListPosts)
		r.Post("/posts", postController.CreatePost)
		r.Put("/posts", postController.UpdatePost)
		r.Get("/posts/{id}/versions", postController.ListPostVersions)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
