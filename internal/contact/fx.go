package contact

import (
	"github.com/prismpay/prism/internal/contact/repository"
	"github.com/prismpay/prism/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
