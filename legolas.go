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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adafruit/legolas/elfquery"
	"github.com/adafruit/legolas/hexfile"
	"github.com/adafruit/legolas/logger"
	"github.com/adafruit/legolas/modalflag"
	"github.com/adafruit/legolas/performance"
	"github.com/adafruit/legolas/terminal"
	"github.com/adafruit/legolas/terminal/colorterm"
	"github.com/adafruit/legolas/terminal/plainterm"
	"github.com/adafruit/legolas/version"
	"golang.org/x/term"
)

// the modes accepted on the command line. the modalflag package treats the
// first sub-mode in this list as a default but this program requires the
// mode to be explicit. main() checks for that.
var modes = []string{"ELFQUERY", "HEXMERGE", "HEXPAD", "VERSION"}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes(modes...)

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	// the modalflag package falls back to the first sub-mode when the
	// leading argument does not name one. there is no default mode in this
	// program so the selection must have been explicit
	if !strings.EqualFold(md.GetArg(0), md.Mode()) {
		if md.GetArg(0) == "" {
			fmt.Println("* no mode specified")
		} else {
			fmt.Printf("* unknown mode (%s)\n", md.GetArg(0))
		}
		fmt.Printf("  available modes: %s\n", strings.Join(modes, ", "))
		os.Exit(10)
	}

	switch md.Mode() {
	case "ELFQUERY":
		err = elfQuery(md)

	case "HEXMERGE":
		err = hexMerge(md)

	case "HEXPAD":
		err = hexPad(md)

	case "VERSION":
		err = printVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func elfQuery(md *modalflag.Modes) error {
	md.NewMode()

	columns := md.AddBool("columns", false, "print the table and column key")
	format := md.AddString("format", "friendly", "output format for one-shot queries: FRIENDLY, CSV, TSV")
	output := md.AddString("output", "", "write one-shot query results to file instead of stdout")
	termType := md.AddString("term", "COLOR", "terminal type to use in interactive mode: COLOR, PLAIN")
	profile := md.AddBool("profile", false, "run mode through cpu profiler")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout))
	} else {
		logger.SetEcho(nil)
	}

	// the column key describes the database schema. no ELF file is needed
	if *columns {
		elfquery.WriteColumns(md.Output)
		return nil
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("ELF file required for %s mode", md)
	case 1, 2:
		// a filename on its own enters the interactive loop. a filename
		// followed by a query runs that one query and exits
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	run := func() error {
		qry, err := elfquery.Open(md.GetArg(0))
		if err != nil {
			return err
		}
		defer qry.Close()

		if len(md.RemainingArgs()) == 2 {
			return elfQueryOnce(md, qry, *format, *output)
		}

		return elfQueryLoop(md, qry, *termType)
	}

	// if profile generation has been requested then pass the run()
	// function prepared above through the ProfileCPU() command
	if *profile {
		err := performance.ProfileCPU("elfquery.cpu.profile", run)
		if err != nil {
			return err
		}
		return performance.ProfileMem("elfquery.mem.profile")
	}

	return run()
}

// elfQueryOnce runs a single query, writing the results in the given format
// to stdout or to the named output file.
func elfQueryOnce(md *modalflag.Modes, qry *elfquery.Query, format string, output string) error {
	f, err := elfquery.ParseFormat(format)
	if err != nil {
		return err
	}

	res, err := qry.Run(md.GetArg(1))
	if err != nil {
		return err
	}

	var w io.Writer = md.Output
	if output != "" {
		out, err := os.Create(output)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}

	return res.Write(w, f)
}

// elfQueryLoop runs the interactive query session.
func elfQueryLoop(md *modalflag.Modes, qry *elfquery.Query, termType string) error {
	var trm terminal.Terminal

	switch strings.ToUpper(termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to color\n", termType)
		fallthrough
	case "COLOR":
		// the color terminal requires a real terminal attached to stdin.
		// redirected input gets the plain terminal
		if term.IsTerminal(int(os.Stdin.Fd())) {
			trm = &colorterm.ColorTerminal{}
		} else {
			logger.Log("terminal", "stdin is not a terminal: using the plain terminal")
			trm = &plainterm.PlainTerminal{}
		}
	case "PLAIN":
		trm = &plainterm.PlainTerminal{}
	}

	if err := trm.Initialise(); err != nil {
		// termios attributes cannot be read or set on some terminals. the
		// plain terminal still works in that situation
		if _, ok := trm.(*colorterm.ColorTerminal); ok {
			logger.Logf("terminal", "%v", err)
			trm = &plainterm.PlainTerminal{}
			err = trm.Initialise()
		}
		if err != nil {
			return err
		}
	}
	defer trm.CleanUp()

	return elfquery.NewSession(qry, trm).Run(md.GetArg(0))
}

func hexMerge(md *modalflag.Modes) error {
	md.NewMode()

	output := md.AddString("output", "", "write the merged image to file instead of stdout")
	overlap := md.AddString("overlap", "error", "overlap policy: ERROR, IGNORE")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout))
	} else {
		logger.SetEcho(nil)
	}

	policy, err := hexfile.ParseOverlap(*overlap)
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("at least one hex file required for %s mode", md)
	}

	img, err := hexfile.MergeFiles(md.RemainingArgs(), policy)
	if err != nil {
		return err
	}

	return writeImage(img, *output)
}

func hexPad(md *modalflag.Modes) error {
	md.NewMode()

	output := md.AddString("output", "", "write the padded image to file instead of stdout")
	start := md.AddAddress("start", "start of the padded range: decimal or 0x hex")
	end := md.AddAddress("end", "end of the padded range: decimal or 0x hex")
	pad := md.AddAddress("pad", "value of the padding byte (default 0xFF)")
	relative := md.AddBool("relative", false, "treat -start and -end as offsets from the used range")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(logger.NewColorizer(os.Stdout))
	} else {
		logger.SetEcho(nil)
	}

	// missing bounds stay nil so that Pad() can default them against the
	// image's used range
	var startAddr, endAddr *int64
	if start.Supplied {
		startAddr = &start.Value
	}
	if end.Supplied {
		endAddr = &end.Value
	}

	// the padding byte is masked to its low eight bits
	padValue := uint8(hexfile.DefaultPadValue)
	if pad.Supplied {
		padValue = uint8(pad.Value)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("hex file required for %s mode", md)
	case 1:
		img, err := hexfile.Load(md.GetArg(0))
		if err != nil {
			return err
		}

		padded, err := hexfile.Pad(img, startAddr, endAddr, padValue, *relative)
		if err != nil {
			return err
		}

		return writeImage(padded, *output)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

// writeImage writes the image to the named file or, when no name is given,
// to stdout.
func writeImage(img *hexfile.Image, output string) error {
	if output == "" {
		return hexfile.Write(img, os.Stdout)
	}
	return hexfile.Save(img, output)
}

func printVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("no additional arguments required for %s mode", md)
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	fmt.Fprintf(md.Output, "revision: %s\n", rev)

	return nil
}
