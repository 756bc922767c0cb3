// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/parkwatch/pkg/core/model"
)

// MismatchingSemVerError indicates an error condition where a version
// compatible with the first element was expected, but the second
// element version was present (e.g., in a configuration file).
type MismatchingSemVerError [2]model.SemVer

// Error returns a string representation of `msve` error instance. This
// method causes *MismatchingSemVerError to implement error interface.
func (msve *MismatchingSemVerError) Error() string {
	expected := (*msve)[0]
	actual := (*msve)[1]
	return fmt.Sprintf(
		"expected v%d.x (up to v%d.%d), but got v%s",
		expected[0], expected[0], expected[1], actual.String(),
	)
}
