package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/splitgrid/internal/engine"
	"github.com/piwi3910/splitgrid/internal/model"
)

// opKind names one step of an edit script.
type opKind string

const (
	opInit     opKind = "init"
	opInsert   opKind = "insert"
	opSplit    opKind = "split"
	opRemove   opKind = "remove"
	opMove     opKind = "move"
	opRows     opKind = "rows"
	opCols     opKind = "cols"
	opEqualize opKind = "equalize"
	opClear    opKind = "clear"
)

// op is one parsed step.
type op struct {
	kind    opKind
	edge    model.Edge
	axis    model.Axis
	face    int
	index   int
	delta   float64
	weights []float64
}

func (o op) String() string {
	switch o.kind {
	case opInsert:
		return fmt.Sprintf("insert:%s", o.edge)
	case opSplit:
		return fmt.Sprintf("split:%d:%s", o.face, o.axis)
	case opRemove:
		return fmt.Sprintf("remove:%d", o.face)
	case opMove:
		return fmt.Sprintf("move:%s:%d:%g", o.axis, o.index, o.delta)
	case opRows, opCols:
		return fmt.Sprintf("%s:%v", o.kind, o.weights)
	default:
		return string(o.kind)
	}
}

// parseOps reads an edit script. Steps are separated by commas, semicolons
// or newlines; arguments by colons:
//
//	init
//	insert:top|bottom|left|right
//	split:FACE:v|h
//	remove:FACE
//	move:v|h:INDEX:DELTA
//	rows:W/W/...   cols:W/W/...
//	equalize
//	clear
func parseOps(script string) ([]op, error) {
	steps := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	var ops []op
	for i, step := range steps {
		step = strings.TrimSpace(step)
		if step == "" || strings.HasPrefix(step, "#") {
			continue
		}
		o, err := parseOp(step)
		if err != nil {
			return nil, fmt.Errorf("step %d %q: %w", i+1, step, err)
		}
		ops = append(ops, o)
	}
	return ops, nil
}

func parseOp(step string) (op, error) {
	parts := strings.Split(step, ":")
	kind := opKind(strings.ToLower(strings.TrimSpace(parts[0])))
	args := parts[1:]
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}

	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", kind, n, len(args))
		}
		return nil
	}

	o := op{kind: kind}
	var err error
	switch kind {
	case opInit, opEqualize, opClear:
		return o, want(0)
	case opInsert:
		if err = want(1); err != nil {
			return o, err
		}
		o.edge, err = model.ParseEdge(args[0])
	case opSplit:
		if err = want(2); err != nil {
			return o, err
		}
		if o.face, err = strconv.Atoi(args[0]); err != nil {
			return o, fmt.Errorf("invalid face id %q", args[0])
		}
		o.axis, err = model.ParseAxis(args[1])
	case opRemove:
		if err = want(1); err != nil {
			return o, err
		}
		if o.face, err = strconv.Atoi(args[0]); err != nil {
			return o, fmt.Errorf("invalid face id %q", args[0])
		}
	case opMove:
		if err = want(3); err != nil {
			return o, err
		}
		if o.axis, err = model.ParseAxis(args[0]); err != nil {
			return o, err
		}
		if o.index, err = strconv.Atoi(args[1]); err != nil {
			return o, fmt.Errorf("invalid divider index %q", args[1])
		}
		if o.delta, err = strconv.ParseFloat(args[2], 64); err != nil {
			return o, fmt.Errorf("invalid delta %q", args[2])
		}
	case opRows, opCols:
		if err = want(1); err != nil {
			return o, err
		}
		for _, f := range strings.Split(args[0], "/") {
			v, perr := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if perr != nil {
				return o, fmt.Errorf("invalid weight %q", f)
			}
			o.weights = append(o.weights, v)
		}
	default:
		return o, fmt.Errorf("unknown operation %q", parts[0])
	}
	return o, err
}

// apply runs one step against g.
func (o op) apply(g *engine.Graph) error {
	switch o.kind {
	case opInit:
		_, err := g.AddInitialFace()
		return err
	case opInsert:
		_, err := g.InsertFromEdge(o.edge)
		return err
	case opSplit:
		_, _, err := g.Subdivide(o.face, o.axis)
		return err
	case opRemove:
		return g.RemoveFace(o.face)
	case opMove:
		return g.MoveDivider(o.axis, o.index, o.delta)
	case opRows:
		return g.SetRowWeights(o.weights)
	case opCols:
		return g.SetColWeights(o.weights)
	case opEqualize:
		return g.Equalize()
	case opClear:
		g.Clear()
		return nil
	}
	return fmt.Errorf("unknown operation %q", o.kind)
}

// applyOps runs every step in order and stops at the first failure.
func applyOps(g *engine.Graph, ops []op) error {
	for i, o := range ops {
		if err := o.apply(g); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, o, err)
		}
	}
	return nil
}
