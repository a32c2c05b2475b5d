package api

import (
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
)

// Services groups the business services used by the API server.
type Services struct {
	Cards *service.CardService
	Auth  *service.AuthService
}
