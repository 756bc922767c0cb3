// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer represents a released semantic version with major, minor,
// and patch components. It is used for tagging the configuration file
// format and the database schema, so a binary can refuse to run with
// a configuration file or database which it does not understand.
// Missing components are parsed as zero, so "1" and "1.0" are both
// equal to "1.0.0".
type SemVer [3]uint

// UnmarshalText parses text as one to three dot-separated non-negative
// numbers and fills `sv`. In case of errors, `sv` is left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if l := len(p); l == 0 || l > 3 {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v [3]uint
	for i, s := range p {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", s)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` as its dot-separated string representation.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns `sv` like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Compatible reports if a binary which supports `sv` may read data of
// the `other` version. Major versions must match and the `other` minor
// version may not be newer than `sv` minor version.
func (sv SemVer) Compatible(other SemVer) bool {
	return sv[0] == other[0] && other[1] <= sv[1]
}
