// Package printer renders engine state for the console: the memory map, the
// free list, the process table and summary statistics.
package printer

import (
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/addrspace/space"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable tables.
	FormatText Format = "text"

	// FormatJSON outputs JSON documents.
	FormatJSON Format = "json"
)

// ColorMode controls styling of text output.
type ColorMode int

const (
	// ColorAuto styles output only when the writer is a color-capable terminal.
	ColorAuto ColorMode = iota
	// ColorAlways styles output unconditionally.
	ColorAlways
	// ColorNever disables styling.
	ColorNever
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Color controls ANSI styling of text tables.
	// Default: ColorAuto
	Color ColorMode

	// Grouping prints numbers with thousands separators (text format only).
	// Default: false
	Grouping bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format: FormatText,
		Color:  ColorAuto,
	}
}

// Printer writes engine views to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
	num    *message.Printer
	styles styles
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintMemoryMap(eng.MemoryMap())
func New(w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		num:    message.NewPrinter(language.English),
		styles: newStyles(w, opts.Color),
	}
}

// PrintMemoryMap prints every segment of the address space in order.
func (p *Printer) PrintMemoryMap(segs []space.Segment) error {
	if p.opts.Format == FormatJSON {
		return p.printMemoryMapJSON(segs)
	}
	return p.printMemoryMapText(segs)
}

// PrintFreeList prints the free extents.
func (p *Printer) PrintFreeList(free []space.Extent) error {
	if p.opts.Format == FormatJSON {
		return p.printFreeListJSON(free)
	}
	return p.printFreeListText(free)
}

// PrintProcesses prints one row per live process.
func (p *Printer) PrintProcesses(procs []space.ProcessInfo) error {
	if p.opts.Format == FormatJSON {
		return p.printProcessesJSON(procs)
	}
	return p.printProcessesText(procs)
}

// PrintStats prints engine totals.
func (p *Printer) PrintStats(st space.Stats) error {
	if p.opts.Format == FormatJSON {
		return p.printStatsJSON(st)
	}
	return p.printStatsText(st)
}

// number formats n, grouping digits when enabled.
func (p *Printer) number(n int) string {
	if !p.opts.Grouping {
		return strconv.Itoa(n)
	}
	return p.num.Sprintf("%d", n)
}
