// cmd/dashboard/main.go
//
// Terminal front end for the scheduling timeline: channel swimlanes down the
// left, one column per day scrolling to the right, drafts column on demand.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/MarcusGasberg/somemellier/internal/api"
	"github.com/MarcusGasberg/somemellier/internal/dashboard"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("API_TOKEN")

	client := api.NewClient(baseURL, token)
	board := dashboard.New(client)

	p := tea.NewProgram(
		newModel(board, context.Background()),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
