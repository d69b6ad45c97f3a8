package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-json"

	"github.com/simonhull/fitsview"
)

type hduJSON struct {
	Index     int               `json:"index"`
	Kind      string            `json:"kind"`
	Name      string            `json:"name,omitempty"`
	Element   string            `json:"element,omitempty"`
	Shape     []int             `json:"shape,omitempty"`
	Offset    int64             `json:"header_offset"`
	DataStart int64             `json:"data_offset"`
	DataBytes int64             `json:"data_bytes"`
	Scale     *scaleJSON        `json:"scale,omitempty"`
	Columns   []columnJSON      `json:"columns,omitempty"`
	Keywords  map[string]string `json:"keywords"`
	Stats     *statsJSON        `json:"stats,omitempty"`
}

type scaleJSON struct {
	Mult   float64 `json:"bscale"`
	Offset float64 `json:"bzero"`
}

type columnJSON struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
	Code   string `json:"code"`
}

type statsJSON struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

type fileJSON struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	HDUs     []hduJSON `json:"hdus"`
	Warnings []string  `json:"warnings,omitempty"`
}

func dumpJSON(w io.Writer, f *fitsview.File, hdus []*fitsview.HDU, withStats bool) error {
	out := fileJSON{Path: f.Path, Size: f.Size}
	for _, warn := range f.Warnings {
		out.Warnings = append(out.Warnings, warn.Message)
	}
	for _, h := range hdus {
		j := hduJSON{
			Index:     h.Index,
			Kind:      h.Desc.Kind.String(),
			Name:      h.Desc.Name,
			Shape:     h.Desc.Shape,
			Offset:    h.Desc.HeaderOffset,
			DataStart: h.Desc.DataOffset,
			DataBytes: h.Desc.DataLength,
			Keywords:  map[string]string{},
		}
		if h.Desc.Element != fitsview.ElementInvalid {
			j.Element = h.Desc.Element.String()
		}
		if s := h.Desc.Scale; s != nil {
			j.Scale = &scaleJSON{Mult: s.Mult, Offset: s.Offset}
		}
		for _, c := range h.Columns {
			j.Columns = append(j.Columns, columnJSON{Name: c.Name, Offset: c.Offset, Width: c.Width, Code: string(c.Code)})
		}
		for _, c := range h.Header.Cards() {
			if c.Type == fitsview.ValueComment || c.Type == fitsview.ValueEnd {
				continue
			}
			j.Keywords[c.Keyword] = c.ValueString()
		}
		if withStats {
			if s := computeStats(h); s != nil {
				j.Stats = s
			}
		}
		out.HDUs = append(out.HDUs, j)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func dumpText(w io.Writer, f *fitsview.File, hdus []*fitsview.HDU, withStats, withCards bool) error {
	fmt.Fprintf(w, "%s (%d bytes, %d HDUs)\n", f.Path, f.Size, f.NumHDUs())
	for _, warn := range f.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn.Message)
	}

	for _, h := range hdus {
		d := h.Desc
		fmt.Fprintf(w, "\nHDU %d: %s", h.Index, d.Kind)
		if name := h.Name(); name != "" {
			fmt.Fprintf(w, " %q", name)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  header at %d, data at %d (%d bytes)\n", d.HeaderOffset, d.DataOffset, d.DataLength)
		if d.HasData() {
			fmt.Fprintf(w, "  %s array, shape %v\n", d.Element, d.Shape)
		}
		if s := d.Scale; s != nil {
			fmt.Fprintf(w, "  scaled: physical = %g * stored + %g\n", s.Mult, s.Offset)
		}
		for _, c := range h.Columns {
			fmt.Fprintf(w, "  column %-12s bytes [%d:%d) format %c\n", c.Name, c.Offset, c.Offset+c.Width, c.Code)
		}
		if withCards {
			for _, c := range h.Header.Cards() {
				fmt.Fprintf(w, "  | %s\n", cardLine(c))
			}
		}
		if withStats {
			if s := computeStats(h); s != nil {
				fmt.Fprintf(w, "  stats: n=%d min=%g max=%g mean=%g\n", s.Count, s.Min, s.Max, s.Mean)
			}
		}
	}
	return nil
}

func cardLine(c fitsview.Card) string {
	switch c.Type {
	case fitsview.ValueComment:
		return strings.TrimRight(c.Keyword+" "+c.Comment, " ")
	case fitsview.ValueEnd:
		return "END"
	default:
		line := fmt.Sprintf("%-8s= %s", c.Keyword, c.ValueString())
		if c.Comment != "" {
			line += " / " + c.Comment
		}
		return line
	}
}

// computeStats walks every element of an image HDU's view. Non-finite
// values (NaN padding is common in float images) are skipped.
func computeStats(h *fitsview.HDU) *statsJSON {
	v, err := h.View()
	if err != nil || v.Len() == 0 {
		return nil
	}
	s := statsJSON{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for x := range v.Values() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		s.Count++
		sum += x
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	if s.Count == 0 {
		return nil
	}
	s.Mean = sum / float64(s.Count)
	return &s
}
