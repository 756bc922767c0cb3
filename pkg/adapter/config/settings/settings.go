// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the version-independent helpers which are
// used by the cfgN packages for decoding and validation
// of their pointer-typed settings. A nil setting means that it was
// not configured, so its default value may be chosen by the cfgN
// package or by the use cases layer.
package settings
