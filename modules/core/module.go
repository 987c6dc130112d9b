package core

import (
	"github.com/careops/staffhub/modules/core/infrastructure/persistence"
	"github.com/careops/staffhub/modules/core/services"
	"github.com/careops/staffhub/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewTenantService(persistence.NewTenantRepository()),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
