package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.viam.com/xrspace/config"
	"go.viam.com/xrspace/inputsource"
	"go.viam.com/xrspace/logging"
	"go.viam.com/xrspace/referencespace"
	"go.viam.com/xrspace/session"
	"go.viam.com/xrspace/space"
	"go.viam.com/xrspace/spatialmath"
)

const viewerSpaceName = "viewer"

// namedSpace is a space of the replay session under its configured name.
type namedSpace struct {
	name  string
	space *space.Space
}

// replay drives a session from a replay config.
type replay struct {
	cfg     *config.Config
	sess    *session.Session
	logger  logging.Logger
	spaces  []namedSpace
	sources map[string]*inputsource.Source
	inputs  map[string]*config.Input
}

func newReplay(cfg *config.Config, logger logging.Logger) (*replay, error) {
	r := &replay{
		cfg:     cfg,
		sess:    session.New(logger),
		logger:  logger,
		sources: map[string]*inputsource.Source{},
		inputs:  map[string]*config.Input{},
	}
	r.spaces = append(r.spaces, namedSpace{viewerSpaceName, r.sess.ViewerSpace()})
	for _, rs := range cfg.ReferenceSpaces {
		typ, err := referencespace.ParseType(rs.Type)
		if err != nil {
			return nil, err
		}
		s, err := r.sess.RequestReferenceSpace(typ, rs.ConvertedAttributes)
		if err != nil {
			return nil, errors.Wrapf(err, "requesting reference space %q", rs.Name)
		}
		r.spaces = append(r.spaces, namedSpace{rs.Name, s})
	}
	for idx := range cfg.Inputs {
		in := &cfg.Inputs[idx]
		r.inputs[in.Name] = in
		if err := r.connect(in.Name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// connect adds a fresh source for the named input. A reconnected input gets a new space that
// replaces the old one under the same name.
func (r *replay) connect(name string) error {
	if _, ok := r.sources[name]; ok {
		return nil
	}
	src := r.inputs[name].NewSource()
	s, err := r.sess.AddInputSource(src)
	if err != nil {
		return errors.Wrapf(err, "connecting input %q", name)
	}
	r.sources[name] = src
	for i := range r.spaces {
		if r.spaces[i].name == name {
			r.spaces[i].space = s
			return nil
		}
	}
	r.spaces = append(r.spaces, namedSpace{name, s})
	return nil
}

func (r *replay) disconnect(name string) error {
	src, ok := r.sources[name]
	if !ok {
		return nil
	}
	delete(r.sources, name)
	return errors.Wrapf(r.sess.RemoveInputSource(src.ID()), "disconnecting input %q", name)
}

func (r *replay) lookup(name string) (*space.Space, error) {
	if name == "" {
		if len(r.cfg.ReferenceSpaces) > 0 {
			name = r.cfg.ReferenceSpaces[0].Name
		} else {
			name = viewerSpaceName
		}
	}
	for _, s := range r.spaces {
		if s.name == name {
			return s.space, nil
		}
	}
	return nil, errors.Errorf("no space named %q", name)
}

// step applies one recorded frame and returns it ready for resolution.
func (r *replay) step(f *config.Frame) (*session.Frame, error) {
	for name, raw := range f.Inputs {
		if src, ok := r.sources[name]; ok {
			src.SetRawPose(raw.ToRawPose())
		}
	}
	for _, name := range f.Disconnect {
		if err := r.disconnect(name); err != nil {
			return nil, err
		}
	}
	for _, name := range f.Connect {
		if err := r.connect(name); err != nil {
			return nil, err
		}
		if raw, ok := f.Inputs[name]; ok {
			r.sources[name].SetRawPose(raw.ToRawPose())
		}
	}
	r.logger.Debugw("replaying frame", "connected", len(r.sources), "spaces", len(r.spaces))
	return r.sess.NewFrame(f.Sample())
}

// ResolveAction is the corresponding action for 'resolve'.
func ResolveAction(c *cli.Context) error {
	logger := logging.Global()
	cfg, err := config.Read(c.String(resolveFlagConfig), logger)
	if err != nil {
		return err
	}
	r, err := newReplay(cfg, logger)
	if err != nil {
		return err
	}
	defer utils.UncheckedErrorFunc(r.sess.End)

	baseName := c.String(resolveFlagBase)
	for idx := range cfg.Frames {
		frame, err := r.step(&cfg.Frames[idx])
		if err != nil {
			if errors.Is(err, space.ErrInvalidPoseSample) {
				warningf(c.App.ErrWriter, "skipping frame %d: %v", idx, err)
				continue
			}
			return err
		}
		base, err := r.lookup(baseName)
		if err != nil {
			return err
		}
		if base.Kind() == space.KindInputAnchored && !base.HasInput() {
			warningf(c.App.ErrWriter, "skipping frame %d: base space is disconnected", idx)
			continue
		}

		t := table.NewWriter()
		t.SetTitle(fmt.Sprintf("Frame %d", idx))
		t.AppendHeader(table.Row{"#", "Name", "Kind", "Translation", "Orientation", "Euler"})
		for i, s := range r.spaces {
			if s.space.Kind() == space.KindInputAnchored && !s.space.HasInput() {
				warningf(c.App.ErrWriter, "frame %d: input %q is disconnected", idx, s.name)
				continue
			}
			pose, err := frame.GetPose(s.space, base)
			if err != nil {
				return errors.Wrapf(err, "frame %d: resolving %q", idx, s.name)
			}
			t.AppendRow(poseRow(fmt.Sprintf("%d", i), s.name, s.space.Kind().String(), pose))
		}
		printf(c.App.Writer, "%s", t.Render())
	}
	return nil
}

func poseRow(idx, name, kind string, pose spatialmath.Pose) table.Row {
	pt := pose.Point()
	q := pose.Orientation().Quaternion()
	deg := pose.Orientation().EulerAngles().Degrees()
	return table.Row{
		idx,
		name,
		kind,
		fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pt.X, pt.Y, pt.Z),
		fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f, W:%.4f", q.Imag, q.Jmag, q.Kmag, q.Real),
		fmt.Sprintf("Roll:%.2f, Pitch:%.2f, Yaw:%.2f", deg[0], deg[1], deg[2]),
	}
}
