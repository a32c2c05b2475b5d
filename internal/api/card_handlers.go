package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
)

func (s *Server) registerCardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCards",
		Method:      http.MethodGet,
		Path:        "/api/cards",
		Summary:     "List cards",
		Description: "Returns the whole collection. Clients filter, sort and paginate locally.",
		Tags:        []string{"Cards"},
	}, s.handleListCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportCards",
		Method:      http.MethodGet,
		Path:        "/api/cards/export",
		Summary:     "Export cards",
		Description: "Downloads the collection as an indented JSON file",
		Tags:        []string{"Cards"},
	}, s.handleExportCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCard",
		Method:      http.MethodGet,
		Path:        "/api/cards/{id}",
		Summary:     "Get card",
		Description: "Returns a card by ID",
		Tags:        []string{"Cards"},
	}, s.handleGetCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCard",
		Method:      http.MethodPut,
		Path:        "/api/cards/{id}",
		Summary:     "Update card",
		Description: "Replaces the editable fields of a card and returns the stored result",
		Tags:        []string{"Cards"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCard",
		Method:      http.MethodDelete,
		Path:        "/api/cards/{id}",
		Summary:     "Delete card",
		Description: "Removes a card from the collection",
		Tags:        []string{"Cards"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteCard)
}

// === DTOs ===

// CardListResponse contains the whole collection.
type CardListResponse struct {
	Cards []domain.Card `json:"cards" doc:"All cards in id order"`
	Total int           `json:"total" doc:"Number of cards"`
}

// CardListOutput wraps the card list for Huma.
type CardListOutput struct {
	Body CardListResponse
}

// CardIDInput identifies a card.
type CardIDInput struct {
	ID string `path:"id" doc:"Card ID"`
}

// CardOutput wraps a card for Huma.
type CardOutput struct {
	Body domain.Card
}

// SkillRequest is a skill in an update body.
type SkillRequest struct {
	Name        string `json:"name,omitempty" maxLength:"200" doc:"Skill name"`
	Description string `json:"description,omitempty" maxLength:"2000" doc:"Skill text"`
	Icon        string `json:"icon,omitempty" doc:"Icon URL"`
}

// ImagesRequest holds the two art URLs.
type ImagesRequest struct {
	Unidolized string `json:"unidolized,omitempty" doc:"Un-idolized art URL"`
	Idolized   string `json:"idolized,omitempty" doc:"Idolized art URL"`
}

// StatsRequest holds stat text as shown on the wiki.
type StatsRequest struct {
	Wild string `json:"wild,omitempty" doc:"Wild stat, e.g. 3,201"`
	Pop  string `json:"pop,omitempty" doc:"Pop stat"`
	Cool string `json:"cool,omitempty" doc:"Cool stat"`
}

// UpdateCardRequest is the full editable record. Read-only fields such as
// id and timestamps are accepted and ignored, so clients may send back the
// card they fetched.
type UpdateCardRequest struct {
	_           struct{}      `json:"-" additionalProperties:"true"`
	Name        string        `json:"name" maxLength:"200" doc:"Card name"`
	URL         string        `json:"url,omitempty" doc:"Wiki page URL"`
	Images      ImagesRequest `json:"images,omitempty"`
	Skill       *SkillRequest `json:"skill,omitempty"`
	LeaderSkill *SkillRequest `json:"leader_skill,omitempty"`
	Stats       StatsRequest  `json:"stats,omitempty"`
	StatIcons   StatsRequest  `json:"stat_icons,omitempty" doc:"Icon URLs per attribute"`
}

// UpdateCardInput wraps the update request for Huma.
type UpdateCardInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Card ID"`
	Body          UpdateCardRequest
}

// DeleteCardInput identifies the card to delete.
type DeleteCardInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Card ID"`
}

// DeleteCardResponse confirms a delete.
type DeleteCardResponse struct {
	ID      string `json:"id" doc:"Deleted card ID"`
	Deleted bool   `json:"deleted" doc:"Always true"`
}

// DeleteCardOutput wraps the delete confirmation for Huma.
type DeleteCardOutput struct {
	Body DeleteCardResponse
}

// ExportOutput is a file download.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// toDomain converts the request into the card passed to the service.
func (r *UpdateCardRequest) toDomain() *domain.Card {
	skill := func(s *SkillRequest) *domain.Skill {
		if s == nil {
			return nil
		}
		return &domain.Skill{Name: s.Name, Description: s.Description, Icon: s.Icon}
	}

	return &domain.Card{
		Name:        r.Name,
		URL:         r.URL,
		Images:      domain.Images{Unidolized: r.Images.Unidolized, Idolized: r.Images.Idolized},
		Skill:       skill(r.Skill),
		LeaderSkill: skill(r.LeaderSkill),
		Stats:       domain.Stats{Wild: r.Stats.Wild, Pop: r.Stats.Pop, Cool: r.Stats.Cool},
		StatIcons:   domain.StatIcons{Wild: r.StatIcons.Wild, Pop: r.StatIcons.Pop, Cool: r.StatIcons.Cool},
	}
}

// === Handlers ===

func (s *Server) handleListCards(ctx context.Context, _ *struct{}) (*CardListOutput, error) {
	cards, err := s.services.Cards.List(ctx)
	if err != nil {
		return nil, err
	}
	return &CardListOutput{Body: CardListResponse{Cards: cards, Total: len(cards)}}, nil
}

func (s *Server) handleGetCard(ctx context.Context, input *CardIDInput) (*CardOutput, error) {
	card, err := s.services.Cards.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CardOutput{Body: *card}, nil
}

func (s *Server) handleUpdateCard(ctx context.Context, input *UpdateCardInput) (*CardOutput, error) {
	claims, err := requireEditor(ctx)
	if err != nil {
		return nil, err
	}

	card, err := s.services.Cards.Update(ctx, input.ID, input.Body.toDomain())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("card edited", "card_id", input.ID, "editor", claims.Username)
	return &CardOutput{Body: *card}, nil
}

func (s *Server) handleDeleteCard(ctx context.Context, input *DeleteCardInput) (*DeleteCardOutput, error) {
	claims, err := requireEditor(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Cards.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	s.logger.Debug("card removed", "card_id", input.ID, "editor", claims.Username)
	return &DeleteCardOutput{Body: DeleteCardResponse{ID: input.ID, Deleted: true}}, nil
}

func (s *Server) handleExportCards(ctx context.Context, _ *struct{}) (*ExportOutput, error) {
	data, err := s.services.Cards.Export(ctx)
	if err != nil {
		return nil, err
	}
	return &ExportOutput{
		ContentType:        "application/json",
		ContentDisposition: `attachment; filename="` + service.ExportFilename + `"`,
		Body:               data,
	}, nil
}
