package vision

import (
	"github.com/screenclash/screenclash/internal/config"
	visiondomain "github.com/screenclash/screenclash/internal/vision/domain"
	"github.com/screenclash/screenclash/internal/vision/openai"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("vision",
	fx.Provide(func(cfg config.Config, log *zap.Logger) visiondomain.Extractor {
		return openai.NewClient(cfg.Vision, log)
	}),
)
