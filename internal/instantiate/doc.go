// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package instantiate builds components whose concrete type is selected at
// runtime by configuration.
//
// A configuration record ([Kwargs]) names its target with two reserved keys,
// module_name and class_name. Every (module, class) pair is bound to a
// [Factory] in a [Registry]; registration normally happens at process start
// from package init functions. [Registry.InstantiateFromConfig] resolves the
// pair, merges keyword arguments in the order
//
//	defaults < config < runtime environment
//
// (later sources overwrite earlier same-key entries) and calls the factory.
//
// Factories receive the merged arguments as an untyped map. [Typed] adapts a
// constructor that takes a typed configuration struct: the map is decoded
// with mapstructure and unknown or incompatible keys are reported as
// [ErrConstructorMismatch].
//
// Errors are sentinel values matched with errors.Is:
//   - [ErrMissingConfigurationKey]: neither config nor defaults name the module or class;
//   - [ErrModuleNotFound], [ErrClassNotFound]: the pair is not registered;
//   - [ErrConstructorMismatch]: the factory rejected the merged arguments;
//   - [ErrInvalidArgumentType]: a reserved key or registration argument has the wrong type.
package instantiate
