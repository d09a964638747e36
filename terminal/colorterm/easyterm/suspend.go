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

package easyterm

import (
	"os"
	"syscall"
)

// SuspendProcess manually suspends the current process. This is required
// when the terminal is in raw mode and receives the suspend keypress, which
// the terminal driver would otherwise have handled.
func SuspendProcess() {
	p, err := os.FindProcess(os.Getppid())
	if err != nil {
		panic("process does not seem to have a parent")
	}

	// send TSTP signal to parent process
	p.Signal(syscall.SIGTSTP)
}
