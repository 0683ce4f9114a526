package fx

import (
	"github.com/onzevirtual/fm-analytics/internal/api"
	"github.com/onzevirtual/fm-analytics/internal/auth"
	"github.com/onzevirtual/fm-analytics/internal/config"
	"github.com/onzevirtual/fm-analytics/internal/database"
	"github.com/onzevirtual/fm-analytics/internal/logger"
	"github.com/onzevirtual/fm-analytics/internal/repository"
	"github.com/onzevirtual/fm-analytics/internal/server"
	"github.com/onzevirtual/fm-analytics/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewUserRepository),
	// outbound client
	fx.Provide(api.NewBackupClient),
	// svc
	fx.Provide(service.NewLicenseService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewDashboardService),
	fx.Provide(service.NewExportService),
	fx.Provide(service.NewBackupService),
	// http
	fx.Provide(auth.NewHandler),
	fx.Provide(server.New),
)
