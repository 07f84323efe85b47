package list_providers

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// ProviderResponse HTTP response model
type ProviderResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Handler struct {
	userClient UserServiceClient
	logger     Logger
}

func NewHandler(userClient UserServiceClient, logger Logger) *Handler {
	return &Handler{
		userClient: userClient,
		logger:     logger,
	}
}

// Handle GET /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providers, err := h.userClient.ListProviders(r.Context())
	if err != nil {
		h.logger.Error("GET /providers - Failed to list providers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]ProviderResponse, 0, len(providers))
	for _, p := range providers {
		response = append(response, ProviderResponse{
			ID:        p.ID,
			Name:      p.Name,
			Email:     p.Email,
			AvatarURL: p.AvatarURL,
		})
	}

	h.logger.Info("GET /providers - Listed %d providers", len(response))
	handlers.RespondJSON(w, http.StatusOK, response)
}
