package prism

import (
	"github.com/prismpay/prism/internal/prism/repository"
	"github.com/prismpay/prism/internal/prism/service"
	"go.uber.org/fx"
)

var Module = fx.Module("prism.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
