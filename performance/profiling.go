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

// Package performance provides profiling wrappers for the -profile command
// line flag.
package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/adafruit/legolas/curated"
)

// sentinal error pattern for all profiling failures.
const profilingError = "profiling: %v"

// ProfileCPU runs the supplied function with the CPU profiler engaged,
// writing the profile to outFile. The return value of the function is
// passed through.
func ProfileCPU(outFile string, run func() error) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(profilingError, err)
	}
	defer f.Close()

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return curated.Errorf(profilingError, err)
	}
	defer pprof.StopCPUProfile()

	return run()
}

// ProfileMem writes a snapshot of the memory profile to outFile. Call after
// the work being measured has completed.
func ProfileMem(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return curated.Errorf(profilingError, err)
	}
	defer f.Close()

	runtime.GC()

	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return curated.Errorf(profilingError, err)
	}

	return nil
}
