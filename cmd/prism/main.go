package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/prismpay/prism/internal/config"
	"github.com/prismpay/prism/internal/contact"
	"github.com/prismpay/prism/internal/destination"
	"github.com/prismpay/prism/internal/migration"
	"github.com/prismpay/prism/internal/observability"
	"github.com/prismpay/prism/internal/overview"
	"github.com/prismpay/prism/internal/prism"
	"github.com/prismpay/prism/internal/server"
	"github.com/prismpay/prism/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		contact.Module,
		destination.Module,
		prism.Module,
		overview.Module,

		server.Module,
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
