package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/Ryuseikaiz/Ichu-Database/internal/auth"
	"github.com/Ryuseikaiz/Ichu-Database/internal/config"
	"github.com/Ryuseikaiz/Ichu-Database/internal/logger"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCardService provides the card service.
func ProvideCardService(i do.Injector) (*service.CardService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCardService(storeHandle.Store, v, log.Logger), nil
}

// ProvideAuthService provides the editor auth service and makes sure the
// configured editor account exists.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewAuthService(storeHandle.Store, tokens, v, log.Logger)
	if err := svc.EnsureEditor(context.Background(), cfg.Editor.Username, cfg.Editor.Password); err != nil {
		return nil, err
	}
	return svc, nil
}
