package main

import (
	"go.uber.org/dig"

	"github.com/recallkit/recall/internal"
	"github.com/recallkit/recall/internal/infrastructure/repositories/gitsync"
)

// injectAppContext builds the DIG container and resolves the application
// context. The returned shutdown function drains pending background syncs.
func injectAppContext() (*internal.AppInternal, func()) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal plus the sync manager for shutdown
	var appInternal *internal.AppInternal
	var manager *gitsync.Manager
	if err := container.Invoke(func(ai *internal.AppInternal, m *gitsync.Manager) {
		appInternal = ai
		manager = m
	}); err != nil {
		panic(err)
	}

	return appInternal, manager.Close
}
