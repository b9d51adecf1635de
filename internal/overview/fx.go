package overview

import (
	"github.com/prismpay/prism/internal/overview/repository"
	"github.com/prismpay/prism/internal/overview/service"
	"go.uber.org/fx"
)

var Module = fx.Module("overview.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
