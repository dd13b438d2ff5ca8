// Package workload replays YAML operation scripts against a string-keyed
// container and reports every step whose outcome differs from what the
// script expects.
package workload

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/amp-labs/dict/dict"
	"github.com/amp-labs/dict/logger"
	"github.com/amp-labs/dict/should"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrUnknownKind = errors.New("unknown error kind")
	ErrNestedEach  = errors.New("each is only valid on enum steps")
)

//go:embed scenarios/*.yaml
var scenarioFS embed.FS

// Step is one operation. Expect, when set, is compared with the
// stringified result; Error names the expected dict.Kind ("" means none).
type Step struct {
	Op     string  `yaml:"op"`
	Key    string  `yaml:"key,omitempty"`
	Value  string  `yaml:"value,omitempty"`
	Expect *string `yaml:"expect,omitempty"`
	Error  string  `yaml:"error,omitempty"`
	Stop   bool    `yaml:"stop,omitempty"`
	Each   []Step  `yaml:"each,omitempty"`
}

// Script is a named list of steps run against one fresh container.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Report summarizes a run.
type Report struct {
	Name     string
	Steps    int
	Failures []string
}

// OK reports whether every step behaved as expected.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

var knownOps = map[string]bool{ //nolint:gochecknoglobals
	"set": true, "get": true, "remove": true, "exists": true, "size": true,
	"clear": true, "free": true, "enum": true, "dump": true,
}

// Load decodes and validates a script.
func Load(r io.Reader) (Script, error) {
	var script Script

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&script); err != nil {
		return Script{}, fmt.Errorf("decoding workload: %w", err)
	}

	if err := validate(script.Steps, "steps"); err != nil {
		return Script{}, err
	}

	return script, nil
}

func validate(steps []Step, path string) error {
	for i, step := range steps {
		where := fmt.Sprintf("%s[%d]", path, i)

		if !knownOps[step.Op] {
			return fmt.Errorf("%w %q at %s", ErrUnknownOp, step.Op, where)
		}

		if step.Error != "" {
			if _, ok := dict.ParseKind(step.Error); !ok {
				return fmt.Errorf("%w %q at %s", ErrUnknownKind, step.Error, where)
			}
		}

		if len(step.Each) > 0 && step.Op != "enum" {
			return fmt.Errorf("%w (%s)", ErrNestedEach, where)
		}

		if err := validate(step.Each, where+".each"); err != nil {
			return err
		}
	}

	return nil
}

// Scenarios returns the built-in scripts, in file name order.
func Scenarios() ([]Script, error) {
	entries, err := fs.ReadDir(scenarioFS, "scenarios")
	if err != nil {
		return nil, err
	}

	scripts := make([]Script, 0, len(entries))

	for _, entry := range entries {
		file, err := scenarioFS.Open("scenarios/" + entry.Name())
		if err != nil {
			return nil, err
		}

		script, err := Load(file)
		_ = file.Close()

		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		scripts = append(scripts, script)
	}

	return scripts, nil
}

type runner struct {
	ctx    context.Context //nolint:containedctx
	report *Report
}

// Run executes the script against a new Dict[string, string] built with
// opts. It stops early, recording a failure, if ctx is canceled.
func Run(ctx context.Context, script Script, opts ...dict.Option) Report {
	report := Report{Name: script.Name}
	r := &runner{ctx: ctx, report: &report}

	d := dict.New[string, string](append([]dict.Option{dict.WithName(script.Name)}, opts...)...)

	defer func() {
		if !d.Freed() {
			should.Free(d, "failed to free workload container")
		}
	}()

	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("steps[%d]: %v", i, err))

			break
		}

		r.step(d, step, fmt.Sprintf("steps[%d]", i))
	}

	return report
}

func (r *runner) step(d *dict.Dict[string, string], step Step, where string) {
	r.report.Steps++

	result, err := r.exec(d, step, where)

	wantKind := dict.KindNone
	if step.Error != "" {
		wantKind, _ = dict.ParseKind(step.Error)
	}

	if gotKind := dict.KindOf(err); gotKind != wantKind {
		r.report.Failures = append(r.report.Failures,
			fmt.Sprintf("%s %s %q: want error %s, got %s", where, step.Op, step.Key, wantKind, gotKind))
	}

	if step.Expect != nil && *step.Expect != result {
		r.report.Failures = append(r.report.Failures,
			fmt.Sprintf("%s %s %q: want %q, got %q", where, step.Op, step.Key, *step.Expect, result))
	}
}

func (r *runner) exec(d *dict.Dict[string, string], step Step, where string) (string, error) {
	switch step.Op {
	case "set":
		return "", d.Set(step.Key, step.Value)
	case "get":
		return d.Get(step.Key)
	case "remove":
		return d.Remove(step.Key)
	case "exists":
		found, err := d.Exists(step.Key)

		return strconv.FormatBool(found), err
	case "size":
		return strconv.Itoa(d.Size()), nil
	case "clear":
		return "", d.Clear()
	case "free":
		return "", d.Free()
	case "enum":
		visits := 0

		err := d.Enum(func(inner *dict.Dict[string, string], _ string, _ string) bool {
			for j, nested := range step.Each {
				r.step(inner, nested, fmt.Sprintf("%s.each[%d]", where, j))
			}

			visits++

			return step.Stop
		})

		return strconv.Itoa(visits), err
	case "dump":
		keys, err := dict.NaturalSortedKeys(d)

		logger.Get(r.ctx).Info("workload dump", "workload", r.report.Name, "keys", keys)

		return strings.Join(keys, ","), err
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
}
