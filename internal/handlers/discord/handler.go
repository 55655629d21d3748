// Package discord exposes the importer over Discord slash commands.
package discord

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/ironreach/steelbridge/internal/repositories/choices"
	"github.com/ironreach/steelbridge/internal/services/importer"
)

// Handler handles all Discord interactions
type Handler struct {
	importHandler *ImportHandler
	listHandler   *ListHandler
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ImportService importer.Service
	Repository    choices.Repository

	// HTTPClient fetches export attachments. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Handler{
		importHandler: NewImportHandler(&ImportHandlerConfig{
			ImportService: cfg.ImportService,
			HTTPClient:    httpClient,
		}),
		listHandler: NewListHandler(&ListHandlerConfig{
			Repository: cfg.Repository,
		}),
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "import",
			Description: "Import a character from a builder export file",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "The exported character JSON file",
					Required:    true,
				},
			},
		},
		{
			Name:        "imports",
			Description: "List your imported characters",
		},
	}

	for _, cmd := range commands {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		log.Printf("Registered command: %s", cmd.Name)
	}

	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "import":
		req := &ImportRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.importHandler.Handle(req); err != nil {
			log.Printf("Error handling import: %v", err)
		}
	case "imports":
		req := &ListRequest{
			Session:     s,
			Interaction: i,
		}
		if err := h.listHandler.Handle(req); err != nil {
			log.Printf("Error handling imports list: %v", err)
		}
	}
}

// interactionUser returns the invoking user for both guild and DM contexts.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
