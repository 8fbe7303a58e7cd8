package main

import (
	"fmt"
	"io"

	"analex/internal/observ"
)

func printTimings(out io.Writer, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	for _, phase := range report.Phases {
		if phase.Note != "" {
			fmt.Fprintf(out, "%-18s %7.3f ms  %s\n", phase.Name, phase.DurationMS, phase.Note)
			continue
		}
		fmt.Fprintf(out, "%-18s %7.3f ms\n", phase.Name, phase.DurationMS)
	}
	fmt.Fprintf(out, "%-18s %7.3f ms\n", "total", report.TotalMS)
}
