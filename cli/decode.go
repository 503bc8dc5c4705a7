package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/xrspace/space"
	"go.viam.com/xrspace/spatialmath"
)

// DecodeAction is the corresponding action for 'decode'.
func DecodeAction(c *cli.Context) error {
	var raw space.RawPose
	if c.IsSet(decodeFlagPosition) {
		vals, err := parseFloats(c.String(decodeFlagPosition), 3)
		if err != nil {
			return errors.Wrapf(err, "--%s", decodeFlagPosition)
		}
		raw.Position = &[3]float32{vals[0], vals[1], vals[2]}
	}
	if c.IsSet(decodeFlagOrient) {
		vals, err := parseFloats(c.String(decodeFlagOrient), 4)
		if err != nil {
			return errors.Wrapf(err, "--%s", decodeFlagOrient)
		}
		raw.Orientation = &[4]float32{vals[0], vals[1], vals[2], vals[3]}
	}
	if err := space.ValidateRawPose(raw); err != nil {
		return err
	}
	if raw.Orientation == nil {
		warningf(c.App.ErrWriter, "no orientation given, the decoded rotation is the zero quaternion")
	}

	pose := space.DecodePose(raw)
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Kind", "Translation", "Orientation", "Euler"})
	t.AppendRow(poseRow("0", "device", space.KindViewer.String(), pose))
	printf(c.App.Writer, "%s", t.Render())

	m := spatialmath.PoseToMatrix(pose)
	mt := table.NewWriter()
	mt.SetTitle("Matrix")
	for row := 0; row < 4; row++ {
		r := table.Row{}
		for col := 0; col < 4; col++ {
			r = append(r, fmt.Sprintf("%.4f", m.At(row, col)))
		}
		mt.AppendRow(r)
	}
	printf(c.App.Writer, "%s", mt.Render())
	return nil
}

func parseFloats(s string, n int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.Errorf("expected %d comma separated values, got %d", n, len(parts))
	}
	vals := make([]float32, 0, n)
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %q", p)
		}
		vals = append(vals, float32(v))
	}
	return vals, nil
}
