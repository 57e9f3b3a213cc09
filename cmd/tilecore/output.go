package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/tilecore/internal/engine"
	"github.com/1broseidon/tilecore/internal/window"
)

// printer writes tables to terminals and JSON everywhere else.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, forceJSON bool) printer {
	asJSON := forceJSON
	if f, ok := w.(*os.File); ok && !forceJSON {
		asJSON = !term.IsTerminal(int(f.Fd()))
	}
	return printer{w: w, json: asJSON}
}

func (p printer) emitJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) status(st *engine.Status) error {
	if p.json {
		return p.emitJSON(st)
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "variant:\t%s\n", st.Variant)
	fmt.Fprintf(tw, "layout:\t%s\n", orDash(st.Layout))
	fmt.Fprintf(tw, "screen:\t%s\n", st.Screen)
	fmt.Fprintf(tw, "windows:\t%s\n", ids(st.Windows))
	fmt.Fprintf(tw, "focused:\t%s\n", optionalID(st.Focused))
	fmt.Fprintf(tw, "master:\t%s\n", optionalID(st.Master))
	fmt.Fprintf(tw, "floating:\t%s\n", ids(st.Floating))
	fmt.Fprintf(tw, "minimised:\t%s\n", ids(st.Minimised))
	if st.Gap != nil {
		fmt.Fprintf(tw, "gap:\t%d\n", *st.Gap)
	}
	fmt.Fprintf(tw, "workspace:\t%d/%d\n", st.Workspace+1, st.Workspaces)
	fmt.Fprintf(tw, "uptime_seconds:\t%d\n", st.UptimeSeconds)
	return tw.Flush()
}

func (p printer) layout(l window.Layout) error {
	if p.json {
		return p.emitJSON(l)
	}
	focused, hasFocus := l.FocusedWindow()
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDOW\tGEOMETRY\tFOCUSED")
	for _, pl := range l.Windows {
		mark := ""
		if hasFocus && pl.Window == focused {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", pl.Window, pl.Geometry, mark)
	}
	if len(l.Windows) == 0 {
		fmt.Fprintln(tw, "-\t-\t")
	}
	return tw.Flush()
}

// result prints the query answer of res, if any, followed by the layout.
func (p printer) result(res *engine.Result) error {
	if p.json {
		return p.emitJSON(res)
	}
	switch {
	case res.Status != nil:
		return p.status(res.Status)
	case res.Info != nil:
		info := res.Info
		fmt.Fprintf(p.w, "window %d: mode=%s fullscreen=%v geometry=%s\n", info.Window, info.Mode, info.Fullscreen, info.Geometry)
	case res.Op == engine.OpMaster:
		fmt.Fprintf(p.w, "master: %s\n", optionalID(res.Master))
	case res.Gap != nil:
		fmt.Fprintf(p.w, "gap: %d\n", *res.Gap)
	case res.Workspace != nil:
		fmt.Fprintf(p.w, "workspace: %d\n", *res.Workspace)
	}
	return p.layout(res.Layout)
}

func ids(list []window.ID) string {
	if len(list) == 0 {
		return "-"
	}
	parts := make([]string, len(list))
	for i, w := range list {
		parts[i] = fmt.Sprint(w)
	}
	return strings.Join(parts, " ")
}

func optionalID(w *window.ID) string {
	if w == nil {
		return "-"
	}
	return fmt.Sprint(*w)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
