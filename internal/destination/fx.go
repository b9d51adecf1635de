package destination

import (
	"github.com/prismpay/prism/internal/destination/repository"
	"github.com/prismpay/prism/internal/destination/service"
	"go.uber.org/fx"
)

var Module = fx.Module("destination.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
