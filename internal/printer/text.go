package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/addrspace/space"
)

const (
	addrColWidth   = 13
	statusColWidth = 15
)

// rule returns a horizontal separator matching a table with the given
// column widths.
func rule(widths ...int) string {
	n := 1
	for _, w := range widths {
		n += w + 3
	}
	return strings.Repeat("-", n)
}

// column is one table column. Numbers are right-aligned, text columns set
// left.
type column struct {
	title string
	width int
	left  bool
}

// row lays out cells as "| a | b | c |".
func row(cols []column, cells ...string) string {
	var b strings.Builder
	b.WriteString("|")
	for i, c := range cells {
		if cols[i].left {
			fmt.Fprintf(&b, " %-*s |", cols[i].width, c)
		} else {
			fmt.Fprintf(&b, " %*s |", cols[i].width, c)
		}
	}
	return b.String()
}

func (p *Printer) printTable(title string, cols []column, rows [][]string, paint []func(...string) string) error {
	widths := make([]int, len(cols))
	header := make([]string, len(cols))
	for i, c := range cols {
		widths[i], header[i] = c.width, c.title
	}
	sep := p.styles.rule(rule(widths...))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.styles.header(title))
	fmt.Fprintf(&b, "%s\n", sep)
	fmt.Fprintf(&b, "%s\n", p.styles.header(row(cols, header...)))
	fmt.Fprintf(&b, "%s\n", sep)
	for i, r := range rows {
		line := row(cols, r...)
		if paint != nil && paint[i] != nil {
			line = paint[i](line)
		}
		fmt.Fprintf(&b, "%s\n", line)
	}
	fmt.Fprintf(&b, "%s\n", sep)

	_, err := fmt.Fprint(p.writer, b.String())
	return err
}

// printMemoryMapText prints the classic Start/End/Status table. End
// addresses are inclusive.
func (p *Printer) printMemoryMapText(segs []space.Segment) error {
	cols := []column{
		{title: "Start Address", width: addrColWidth},
		{title: "End Address", width: addrColWidth},
		{title: "Status", width: statusColWidth, left: true},
	}
	rows := make([][]string, 0, len(segs))
	paint := make([]func(...string) string, 0, len(segs))
	for _, s := range segs {
		rows = append(rows, []string{p.number(s.Start), p.number(s.Last()), status(s)})
		if s.Free {
			paint = append(paint, p.styles.free)
		} else {
			paint = append(paint, p.styles.owned)
		}
	}
	return p.printTable("Memory Status:", cols, rows, paint)
}

func status(s space.Segment) string {
	if s.Free {
		return "Free"
	}
	return fmt.Sprintf("Process %d", s.Owner)
}

func (p *Printer) printFreeListText(free []space.Extent) error {
	cols := []column{
		{title: "Start Address", width: addrColWidth},
		{title: "End Address", width: addrColWidth},
		{title: "Size", width: addrColWidth},
	}
	rows := make([][]string, 0, len(free))
	for _, e := range free {
		rows = append(rows, []string{p.number(e.Start), p.number(e.Last()), p.number(e.Size)})
	}
	return p.printTable(fmt.Sprintf("Free Extents (%d):", len(free)), cols, rows, nil)
}

func (p *Printer) printProcessesText(procs []space.ProcessInfo) error {
	cols := []column{
		{title: "Process", width: addrColWidth},
		{title: "Extents", width: addrColWidth},
		{title: "Bytes", width: statusColWidth},
	}
	rows := make([][]string, 0, len(procs))
	for _, pi := range procs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", pi.ID),
			p.number(len(pi.Extents)),
			p.number(pi.Bytes),
		})
	}
	return p.printTable(fmt.Sprintf("Processes (%d):", len(procs)), cols, rows, nil)
}

func (p *Printer) printStatsText(st space.Stats) error {
	lines := []struct {
		label string
		value int
	}{
		{"Total size", st.TotalSize},
		{"Allocated", st.AllocatedBytes},
		{"Free", st.FreeBytes},
		{"Free extents", st.FreeExtents},
		{"Largest free", st.LargestFree},
		{"Processes", st.Processes},
		{"Allocations", st.Allocations},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.styles.header("Memory Statistics:"))
	for _, l := range lines {
		fmt.Fprintf(&b, "  %-13s %s\n", l.label+":", p.number(l.value))
	}
	_, err := fmt.Fprint(p.writer, b.String())
	return err
}
