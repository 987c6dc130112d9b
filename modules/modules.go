package modules

import (
	"github.com/careops/staffhub/modules/core"
	"github.com/careops/staffhub/modules/staff"
	"github.com/careops/staffhub/pkg/application"
)

// BuiltInModules lists every module in load order. Core goes first so the
// staff module can resolve tenants.
var BuiltInModules = []application.Module{
	core.NewModule(),
	staff.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	return application.Load(app, append(BuiltInModules, externalModules...)...)
}
