// Package cli contains the xrspace command line: replaying recorded tracking frames through a
// session and decoding single device poses.
package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/xrspace/logging"
)

const (
	// Flags.
	generalFlagDebug    = "debug"
	generalFlagLogLevel = "log-level"
	resolveFlagConfig  = "config"
	resolveFlagBase    = "relative-to"
	decodeFlagPosition = "position"
	decodeFlagOrient   = "orientation"
)

// NewApp returns the xrspace app writing its output to out and warnings and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "xrspace",
		Usage:           "resolve XR space poses from recorded tracking data",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging, same as --log-level debug",
			},
			&cli.StringFlag{
				Name:  generalFlagLogLevel,
				Value: "warn",
				Usage: "minimum level of logs written to stderr: debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "resolve",
				Usage:     "replay the frames of a config and print the pose of every space",
				UsageText: "xrspace resolve --config FILE [--relative-to NAME]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     resolveFlagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load replay configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:  resolveFlagBase,
						Usage: "name of the space poses are expressed in; defaults to the first reference space",
					},
				},
				Action: ResolveAction,
			},
			{
				Name:      "decode",
				Usage:     "decode a single device pose and print it with its matrix",
				UsageText: "xrspace decode [--position x,y,z] [--orientation x,y,z,w]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  decodeFlagPosition,
						Usage: "device position in meters",
					},
					&cli.StringFlag{
						Name:  decodeFlagOrient,
						Usage: "device orientation quaternion, not necessarily normalized",
					},
				},
				Action: DecodeAction,
			},
		},
	}
}

// newLogger builds the logger installed as the global logger for the duration of a run.
func newLogger(c *cli.Context) (logging.Logger, error) {
	level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", generalFlagLogLevel)
	}
	if c.Bool(generalFlagDebug) {
		level = logging.DEBUG
	}
	logger := logging.NewBlankLogger("xrspace")
	logger.SetLevel(level)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	return logger, nil
}
