package discord

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ironreach/steelbridge/internal/domain/source"
	"github.com/ironreach/steelbridge/internal/services/importer"
)

// maxExportSize bounds attachment downloads. Real exports are well under 1MB.
const maxExportSize = 1 << 20

// ImportRequest carries one /import invocation.
type ImportRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
}

// ImportHandler handles the /import command.
type ImportHandler struct {
	importService importer.Service
	httpClient    *http.Client
}

// ImportHandlerConfig holds configuration for the import handler.
type ImportHandlerConfig struct {
	ImportService importer.Service
	HTTPClient    *http.Client
}

// NewImportHandler creates a new import handler.
func NewImportHandler(cfg *ImportHandlerConfig) *ImportHandler {
	return &ImportHandler{
		importService: cfg.ImportService,
		httpClient:    cfg.HTTPClient,
	}
}

// Handle downloads the attached export, runs the import, and replies with a
// summary embed. User-facing failures become ephemeral error replies.
func (h *ImportHandler) Handle(req *ImportRequest) error {
	// Defer immediately, the catalog round trips can exceed the 3s window
	err := req.Session.InteractionRespond(req.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return err
	}

	attachment := h.attachment(req.Interaction)
	if attachment == nil {
		return h.editError(req, "No export file attached.")
	}

	doc, err := h.fetchDocument(attachment.URL)
	if err != nil {
		log.Printf("Error fetching export %s: %v", attachment.URL, err)
		return h.editError(req, "Could not read that file as a character export.")
	}

	user := interactionUser(req.Interaction)
	output, err := h.importService.ImportCharacter(context.Background(), &importer.ImportCharacterInput{
		OwnerID:  user.ID,
		RealmID:  req.Interaction.GuildID,
		Document: doc,
	})
	if err != nil {
		log.Printf("Error importing character for %s: %v", user.ID, err)
		return h.editError(req, "Import failed. Please try again later.")
	}

	embed := importSummaryEmbed(output)
	_, err = req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func (h *ImportHandler) attachment(i *discordgo.InteractionCreate) *discordgo.MessageAttachment {
	data := i.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Name == "file" && opt.Type == discordgo.ApplicationCommandOptionAttachment {
			id := opt.Value.(string)
			return data.Resolved.Attachments[id]
		}
	}
	return nil
}

func (h *ImportHandler) fetchDocument(url string) (*source.Document, error) {
	resp, err := h.httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Error closing attachment body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attachment fetch returned status %d", resp.StatusCode)
	}

	return source.Parse(io.LimitReader(resp.Body, maxExportSize))
}

func (h *ImportHandler) editError(req *ImportRequest, message string) error {
	content := "❌ " + message
	_, err := req.Session.InteractionResponseEdit(req.Interaction.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	return err
}

func importSummaryEmbed(output *importer.ImportCharacterOutput) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("✅ Imported %s", output.Name),
		Description: fmt.Sprintf("Matched %d choices.", len(output.Choices)),
		Color:       0x2ecc71,
	}

	for _, section := range output.Sections {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   titleCase(section.Section),
			Value:  fmt.Sprintf("%s: %d matched, %d skipped", section.Name, section.Matched, section.Skipped),
			Inline: true,
		})
	}

	if len(output.Kits) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Kits",
			Value: fmt.Sprintf("%d equipped", len(output.Kits)),
		})
	}

	if len(output.Unresolved) > 0 {
		embed.Color = 0xf1c40f
		var lines []string
		for idx, u := range output.Unresolved {
			if idx == 10 {
				lines = append(lines, fmt.Sprintf("...and %d more", len(output.Unresolved)-idx))
				break
			}
			lines = append(lines, fmt.Sprintf("• %s (%s)", u.Name, u.Reason))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Could not be matched",
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
