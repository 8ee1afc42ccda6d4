package internal

import (
	"github.com/recallkit/recall/internal/domain/entities"
)

// AppInternal is the resolved application context exposed to the CLI layer.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context from the aggregated
// controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered CLI controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
