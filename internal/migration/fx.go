package migration

import (
	"github.com/screenclash/screenclash/internal/config"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migration",
	fx.Invoke(run),
)

// run applies the embedded SQL migrations on postgres. Every other dialect
// (sqlite, mysql, and the unconfigured in-memory fallback) gets schema from
// AutoMigrate instead.
func run(cfg config.Config, db *gorm.DB, log *zap.Logger) error {
	if cfg.DBConfigured && cfg.DBType == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
		log.Info("database migrations applied")
		return nil
	}

	if err := db.AutoMigrate(
		&userdomain.User{},
		&friendshipdomain.Friendship{},
		&friendshipdomain.FriendRequest{},
		&screentimedomain.Entry{},
	); err != nil {
		return err
	}
	log.Info("database schema auto-migrated", zap.String("db_type", cfg.DBType))
	return nil
}
