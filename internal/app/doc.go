// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app ties the datactx building blocks together: it reads the
// project YAML, resolves ${NAME} references against the environment and the
// config-variables file, builds the components the project declares and
// delivers validation notifications.
//
// The cobra commands in cmd/datactx are thin wrappers around [App].
package app
