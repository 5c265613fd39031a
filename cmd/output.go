package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	sim "github.com/kinetic-sim/kinetic-sim/sim"
	"github.com/kinetic-sim/kinetic-sim/sim/ensemble"
	"github.com/kinetic-sim/kinetic-sim/sim/models"
)

// writeTrajectoryCSV writes a header of "time" plus species names, then one
// row per snapshot.
func writeTrajectoryCSV(w io.Writer, traj *sim.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"time"}, traj.Species...)); err != nil {
		return err
	}
	row := make([]string, len(traj.Species)+1)
	for i := 0; i < traj.Len(); i++ {
		t, counts := traj.At(i)
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, c := range counts {
			row[j+1] = strconv.FormatInt(c, 10)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeEnsemble renders moments as an aligned table or as JSON.
func writeEnsemble(w io.Writer, res *ensemble.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "table", "":
		return writeMomentsTable(w, res)
	default:
		return fmt.Errorf("unknown output format %q (valid: table, json)", format)
	}
}

func writeMomentsTable(w io.Writer, res *ensemble.Result) error {
	width := runewidth.StringWidth("species")
	for _, m := range res.Moments {
		width = max(width, runewidth.StringWidth(m.Species))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== Ensemble Moments ===\n")
	fmt.Fprintf(&b, "Run ID      : %s\n", res.RunID)
	fmt.Fprintf(&b, "Method      : %s\n", res.Method)
	fmt.Fprintf(&b, "Replicates  : %d\n", len(res.Final))
	fmt.Fprintf(&b, "Horizon     : %v\n", res.TEnd)
	fmt.Fprintf(&b, "Absorbed    : %d\n", res.Absorbed)
	if res.Method == sim.MethodTauLeap {
		fmt.Fprintf(&b, "Clamps      : %d\n", res.Clamped)
	}
	fmt.Fprintf(&b, "%s  %12s  %12s  %10s  %10s\n",
		runewidth.FillRight("species", width), "mean", "variance", "cv", "std_err")
	for _, m := range res.Moments {
		fmt.Fprintf(&b, "%s  %12.4f  %12.4f  %10.4f  %10.4f\n",
			runewidth.FillRight(m.Species, width), m.Mean, m.Variance, m.CV, m.StdErr)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeModels lists every registered model with its species and rates.
func writeModels(w io.Writer) error {
	width := 0
	for _, name := range models.Names() {
		width = max(width, runewidth.StringWidth(name))
	}
	for _, name := range models.Names() {
		m, err := models.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(name, width), m.Description); err != nil {
			return err
		}
		pad := strings.Repeat(" ", width+2)
		if _, err := fmt.Fprintf(w, "%sspecies %v, initial %v\n%srates %v = %v\n",
			pad, m.Species, m.Initial, pad, m.RateNames, m.Rates); err != nil {
			return err
		}
	}
	return nil
}
