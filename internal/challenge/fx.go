package challenge

import (
	"github.com/screenclash/screenclash/internal/challenge/service"
	"go.uber.org/fx"
)

var Module = fx.Module("challenge.service",
	fx.Provide(service.NewService),
)
