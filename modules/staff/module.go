package staff

import (
	coreservices "github.com/careops/staffhub/modules/core/services"
	"github.com/careops/staffhub/modules/staff/infrastructure/persistence"
	"github.com/careops/staffhub/modules/staff/presentation/controllers"
	"github.com/careops/staffhub/modules/staff/services"
	"github.com/careops/staffhub/pkg/application"
	"github.com/careops/staffhub/pkg/middleware"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

// Register wires the staff repositories, services and the HTTP API. Depends
// on the core module for tenant resolution, so core must load first.
func (m *Module) Register(app application.Application) error {
	staffRepo := persistence.NewStaffRepository()
	unitRepo := persistence.NewOrgUnitRepository()
	logRepo := persistence.NewImportLogRepository()

	app.RegisterServices(
		services.NewImportService(staffRepo, unitRepo, logRepo, app.EventPublisher()),
		services.NewStaffService(staffRepo),
		services.NewOrgUnitService(unitRepo),
	)

	tenants := app.Service(coreservices.TenantService{}).(*coreservices.TenantService)
	app.RegisterControllers(
		controllers.NewStaffAPIController(app, middleware.APIKeyAuth(tenants.ResolveAPIKey)),
	)
	return nil
}

func (m *Module) Name() string {
	return "staff"
}
