// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package components holds the built-in classes that configuration records
// can name through module_name and class_name.
//
// Importing the package registers every built-in class in
// [instantiate.Default]. Callers that need logging from the components
// construct their own registry and call [Register] with a logger.
package components

import (
	"errors"

	"github.com/MKhiriev/go-data-context/internal/instantiate"
	"github.com/MKhiriev/go-data-context/internal/logger"
)

// Module names of the built-in classes.
const (
	ActionsModule = "datactx.actions"
	StoresModule  = "datactx.stores"
)

// Class names of the built-in classes.
const (
	SlackNotificationActionClass = "SlackNotificationAction"
	FilesystemStoreBackendClass  = "FilesystemStoreBackend"
	InMemoryStoreBackendClass    = "InMemoryStoreBackend"
)

func init() {
	if err := Register(instantiate.Default(), nil); err != nil {
		panic(err)
	}
}

// Register adds every built-in class to r. Components built through r log
// to log; a nil log discards their output.
func Register(r *instantiate.Registry, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	return errors.Join(
		r.Register(ActionsModule, SlackNotificationActionClass,
			instantiate.TypedWithDefaults(defaultNotificationConfig, func(cfg NotificationConfig) (*NotificationAction, error) {
				return NewSlackNotificationAction(cfg, log)
			})),
		r.Register(StoresModule, FilesystemStoreBackendClass,
			instantiate.TypedWithDefaults(defaultFilesystemStoreConfig, func(cfg FilesystemStoreConfig) (*FilesystemStoreBackend, error) {
				return NewFilesystemStoreBackend(cfg, log)
			})),
		r.Register(StoresModule, InMemoryStoreBackendClass, func(kwargs instantiate.Kwargs) (any, error) {
			if err := kwargs.Only(); err != nil {
				return nil, err
			}
			return NewInMemoryStoreBackend(), nil
		}),
	)
}
