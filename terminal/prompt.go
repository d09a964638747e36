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

package terminal

import (
	"strings"
)

// Prompt specifies the prompt text and the style it should be printed in.
type Prompt struct {
	Content string
	Style   Style
}

// String returns the prompt with "standard" decoration, suitable for
// terminals with no graphical capabilities at all.
func (p Prompt) String() string {
	return strings.TrimSpace(p.Content) + " "
}
