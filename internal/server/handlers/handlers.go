// Package handlers provides HTTP request handlers for the chatmodels API.
package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// Deps are the collaborators handlers read from.
type Deps struct {
	Catalog   chatmodels.Client
	Registry  *registry.Registry
	EnvKeys   func() catalogs.EnvKeyMap
	Logger    *zerolog.Logger
	StartTime time.Time
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	catalog   chatmodels.Client
	registry  *registry.Registry
	envKeys   func() catalogs.EnvKeyMap
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(deps Deps) *Handlers {
	return &Handlers{
		catalog:   deps.Catalog,
		registry:  deps.Registry,
		envKeys:   deps.EnvKeys,
		logger:    deps.Logger,
		startTime: deps.StartTime,
	}
}
