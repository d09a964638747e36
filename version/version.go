// This file is part of Legolas.
//
// Legolas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Legolas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Legolas.  If not, see <https://www.gnu.org/licenses/>.

// Package version records the version of the program and the vcs state it
// was built from.
package version

import (
	"fmt"
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "legolas"

// number is set through the linker at release time. if it is empty then the
// build did not come from a release.
var number string

// revision contains the vcs revision. if the source had been modified but
// not committed at build time then the string is suffixed with "+dirty".
var revision string

// version is the string reported to the user.
//
// "unreleased" means the project was built manually from a vcs checkout.
// "local" means there is no version number and no vcs information, which
// happens when compiling/running with "go run ."
var version string

// Version returns the version string, the revision string and whether this
// is a numbered release version. If release is true then the revision
// information should be used sparingly.
func Version() (string, string, bool) {
	return version, revision, version == number && number != ""
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "no revision information"
	} else {
		revision = vcsRevision
		if vcsModified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	if number == "" {
		if vcs {
			version = "unreleased"
		} else {
			version = "local"
		}
	} else {
		version = number
	}
}
