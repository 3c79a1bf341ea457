package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/gravsim/internal/experiment"
)

var csvHeader = []string{"tick", "time", "id", "x", "y", "vx", "vy", "fx", "fy", "mass", "radius"}

// CSV writes one row per body per frame, long format, so frames with
// differing body counts share a header.
func CSV(w io.Writer, frames []experiment.Frame) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, f := range frames {
		for _, b := range f.Bodies {
			row := []string{
				strconv.Itoa(f.Tick),
				formatFloat(f.Time),
				strconv.FormatUint(uint64(b.ID), 10),
				formatFloat(b.X),
				formatFloat(b.Y),
				formatFloat(b.VX),
				formatFloat(b.VY),
				formatFloat(b.FX),
				formatFloat(b.FY),
				formatFloat(b.Mass),
				formatFloat(b.Radius),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
