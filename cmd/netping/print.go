package main

import (
	"fmt"
	"io"

	"github.com/hamed0406/netping/internal/domain"
)

func printHuman(w io.Writer, rep domain.Report) {
	if !rep.Alive {
		fmt.Fprintf(w, "%s %s is down: %s\n", rep.Strategy, rep.Target, rep.Exception)
		return
	}
	line := fmt.Sprintf("%s %s is alive", rep.Strategy, rep.Target)
	if rep.DurationMS != nil {
		line += fmt.Sprintf(" (%.1f ms)", *rep.DurationMS)
	}
	if rep.StatusCode != 0 {
		line += fmt.Sprintf(" status=%d", rep.StatusCode)
	}
	fmt.Fprintln(w, line)
	if rep.Warning != "" {
		fmt.Fprintf(w, "warning: %s\n", rep.Warning)
	}
}
