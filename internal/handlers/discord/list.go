package discord

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ironreach/steelbridge/internal/repositories/choices"
)

// ListRequest carries one /imports invocation.
type ListRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

// ListHandler handles the /imports command.
type ListHandler struct {
	repo choices.Repository
}

// ListHandlerConfig holds configuration for the list handler.
type ListHandlerConfig struct {
	Repository choices.Repository
}

// NewListHandler creates a new list handler.
func NewListHandler(cfg *ListHandlerConfig) *ListHandler {
	return &ListHandler{repo: cfg.Repository}
}

// Handle replies with the caller's imported characters, newest first.
func (h *ListHandler) Handle(req *ListRequest) error {
	user := interactionUser(req.Interaction)

	imports, err := h.repo.GetByOwner(context.Background(), user.ID)
	if err != nil {
		log.Printf("Error listing imports for %s: %v", user.ID, err)
		return respondEphemeral(req.Session, req.Interaction, "❌ Could not load your imports.")
	}

	if len(imports) == 0 {
		return respondEphemeral(req.Session, req.Interaction, "You have no imported characters yet. Use `/import` with an export file.")
	}

	sort.Slice(imports, func(a, b int) bool {
		return imports[a].ImportedAt.After(imports[b].ImportedAt)
	})

	var lines []string
	for _, imported := range imports {
		lines = append(lines, fmt.Sprintf("**%s** (%d choices) imported <t:%d:R>",
			imported.Name, len(imported.Choices), imported.ImportedAt.Unix()))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Your Imported Characters",
		Description: strings.Join(lines, "\n"),
		Color:       0x3498db,
	}

	return req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
