package friendship

import (
	"github.com/screenclash/screenclash/internal/friendship/service"
	"go.uber.org/fx"
)

var Module = fx.Module("friendship.service",
	fx.Provide(service.NewService),
)
