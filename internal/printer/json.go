package printer

import (
	"encoding/json"

	"github.com/joshuapare/addrspace/space"
)

// jsonSegment represents one memory map row in JSON format.
type jsonSegment struct {
	Start int  `json:"start"`
	End   int  `json:"end"` // inclusive
	Size  int  `json:"size"`
	Free  bool `json:"free"`
	Owner *int `json:"owner,omitempty"`
}

// jsonExtent represents a free extent in JSON format.
type jsonExtent struct {
	Start int `json:"start"`
	End   int `json:"end"` // inclusive
	Size  int `json:"size"`
}

// jsonProcess represents a live process in JSON format.
type jsonProcess struct {
	ID      int          `json:"id"`
	Bytes   int          `json:"bytes"`
	Extents []jsonExtent `json:"extents"`
}

// jsonStats represents engine totals in JSON format.
type jsonStats struct {
	TotalSize      int `json:"total_size"`
	AllocatedBytes int `json:"allocated_bytes"`
	FreeBytes      int `json:"free_bytes"`
	FreeExtents    int `json:"free_extents"`
	LargestFree    int `json:"largest_free"`
	Processes      int `json:"processes"`
	Allocations    int `json:"allocations"`
}

func toJSONExtent(e space.Extent) jsonExtent {
	return jsonExtent{Start: e.Start, End: e.Last(), Size: e.Size}
}

func (p *Printer) printMemoryMapJSON(segs []space.Segment) error {
	out := make([]jsonSegment, 0, len(segs))
	for _, s := range segs {
		js := jsonSegment{Start: s.Start, End: s.Last(), Size: s.Size, Free: s.Free}
		if !s.Free {
			owner := s.Owner
			js.Owner = &owner
		}
		out = append(out, js)
	}
	return p.printJSON(out)
}

func (p *Printer) printFreeListJSON(free []space.Extent) error {
	out := make([]jsonExtent, 0, len(free))
	for _, e := range free {
		out = append(out, toJSONExtent(e))
	}
	return p.printJSON(out)
}

func (p *Printer) printProcessesJSON(procs []space.ProcessInfo) error {
	out := make([]jsonProcess, 0, len(procs))
	for _, pi := range procs {
		jp := jsonProcess{ID: pi.ID, Bytes: pi.Bytes, Extents: make([]jsonExtent, 0, len(pi.Extents))}
		for _, e := range pi.Extents {
			jp.Extents = append(jp.Extents, toJSONExtent(e))
		}
		out = append(out, jp)
	}
	return p.printJSON(out)
}

func (p *Printer) printStatsJSON(st space.Stats) error {
	return p.printJSON(jsonStats{
		TotalSize:      st.TotalSize,
		AllocatedBytes: st.AllocatedBytes,
		FreeBytes:      st.FreeBytes,
		FreeExtents:    st.FreeExtents,
		LargestFree:    st.LargestFree,
		Processes:      st.Processes,
		Allocations:    st.Allocations,
	})
}

// printJSON outputs data as indented JSON.
func (p *Printer) printJSON(v any) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
