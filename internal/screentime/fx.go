package screentime

import (
	"github.com/screenclash/screenclash/internal/screentime/service"
	"go.uber.org/fx"
)

var Module = fx.Module("screentime.service",
	fx.Provide(service.NewService),
)
