package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/screenclash/screenclash/internal/challenge"
	"github.com/screenclash/screenclash/internal/clock"
	"github.com/screenclash/screenclash/internal/config"
	"github.com/screenclash/screenclash/internal/friendship"
	"github.com/screenclash/screenclash/internal/migration"
	"github.com/screenclash/screenclash/internal/notification"
	"github.com/screenclash/screenclash/internal/observability"
	"github.com/screenclash/screenclash/internal/ratelimit"
	"github.com/screenclash/screenclash/internal/screentime"
	"github.com/screenclash/screenclash/internal/server"
	"github.com/screenclash/screenclash/internal/user"
	"github.com/screenclash/screenclash/internal/vision"
	"github.com/screenclash/screenclash/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		user.Module,
		friendship.Module,
		screentime.Module,
		challenge.Module,
		vision.Module,
		notification.Module,
		ratelimit.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
