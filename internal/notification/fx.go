package notification

import (
	"github.com/screenclash/screenclash/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(
		service.NewLogSender,
		service.NewService,
	),
)
