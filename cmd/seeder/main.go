// cmd/seeder/main.go
package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/MarcusGasberg/somemellier/internal/db"
	"github.com/MarcusGasberg/somemellier/internal/model"
	"github.com/MarcusGasberg/somemellier/internal/repository"
)

// The channel catalog. Ids double as the platform type so connecting "x"
// always means the same row everywhere.
var catalog = []model.Channel{
	{
		ID: "x", Name: "X", Type: model.ChannelTypeX, IconKey: "x",
		Config:   model.JSONMap{},
		Metadata: model.JSONMap{"color": "#000000", "description": "Formerly Twitter"},
	},
	{
		ID: "instagram", Name: "Instagram", Type: model.ChannelTypeInstagram, IconKey: "instagram",
		Config:   model.JSONMap{},
		Metadata: model.JSONMap{"color": "#E4405F", "description": "Photo and video sharing platform"},
	},
	{
		ID: "linkedin", Name: "LinkedIn", Type: model.ChannelTypeLinkedIn, IconKey: "linkedin",
		Config:   model.JSONMap{},
		Metadata: model.JSONMap{"color": "#0077B5", "description": "Professional networking platform"},
	},
	{
		ID: "tiktok", Name: "TikTok", Type: model.ChannelTypeTikTok, IconKey: "tiktok",
		Config:   model.JSONMap{},
		Metadata: model.JSONMap{"color": "#000000", "description": "Short-form video platform"},
	},
	{
		ID: "facebook", Name: "Facebook", Type: model.ChannelTypeFacebook, IconKey: "facebook",
		Config:   model.JSONMap{},
		Metadata: model.JSONMap{"color": "#1877F2", "description": "Social networking platform"},
	},
	{
		ID: "youtube", Name: "YouTube", Type: model.ChannelTypeYouTube, IconKey: "youtube",
		Config:   model.JSONMap{},
		Metadata: model.JSONMap{"color": "#FF0000", "description": "Video sharing platform"},
	},
}

func main() {
	_ = godotenv.Load()

	conn, err := db.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	channelRepo := &repository.ChannelRepository{DB: conn}

	for _, ch := range catalog {
		if err := channelRepo.Upsert(&ch); err != nil {
			log.Fatalf("failed to seed channel %s: %v", ch.ID, err)
		}
		fmt.Printf("Seeded: %s\n", ch.ID)
	}

	fmt.Println("Channel catalog seeding completed successfully!")
}
