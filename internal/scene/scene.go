// Package scene runs draw scripts written in YAML.
//
// A script is a list of drawing operations whose coordinates may be
// arithmetic expressions over the target's width and height:
//
//	name: border
//	background: "#00ff00"
//	ops:
//	  - op: stroke
//	    x: 1
//	    y: 1
//	    w: width - 2
//	    h: height - 2
//	    color: "#ff0000"
//	  - op: line
//	    x: 0
//	    y: 0
//	    x2: width - 1
//	    y2: max(0, height - 1)
//	    color: "#0000ff"
//
// Supported operations are fill, stroke, hline, vline and line.
package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/knetic/govaluate"
	"gopkg.in/yaml.v2"

	"github.com/BeatGlow/fbtools"
	"github.com/BeatGlow/fbtools/draw"
	"github.com/BeatGlow/fbtools/pixel"
)

// ErrInvalid is returned for malformed scripts.
var ErrInvalid = errors.New("scene: invalid script")

// Scene is a parsed draw script.
type Scene struct {
	Name string `yaml:"name"`

	// Background fills the whole surface before the first operation, if set.
	Background string `yaml:"background,omitempty"`

	Ops []Op `yaml:"ops"`

	background *color.NRGBA
}

// Op is a single drawing operation. Which coordinates are used depends on the
// kind: fill and stroke use X, Y, W and H; hline and vline use X, Y and
// Length; line draws from (X, Y) to (X2, Y2).
type Op struct {
	Op     string `yaml:"op"`
	X      Expr   `yaml:"x,omitempty"`
	Y      Expr   `yaml:"y,omitempty"`
	W      Expr   `yaml:"w,omitempty"`
	H      Expr   `yaml:"h,omitempty"`
	Length Expr   `yaml:"length,omitempty"`
	X2     Expr   `yaml:"x2,omitempty"`
	Y2     Expr   `yaml:"y2,omitempty"`
	Color  string `yaml:"color"`

	color color.NRGBA
}

// Expr is an integer coordinate, either a literal or an expression using the
// variables width and height and the functions min and max. A missing Expr
// evaluates to 0.
type Expr struct {
	src  string
	expr *govaluate.EvaluableExpression
}

// ParseExpr compiles an expression.
func ParseExpr(s string) (Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Expr{}, nil
	}
	e, err := govaluate.NewEvaluableExpressionWithFunctions(s, functions)
	if err != nil {
		return Expr{}, fmt.Errorf("%w: expression %q: %w", ErrInvalid, s, err)
	}
	return Expr{src: s, expr: e}, nil
}

// UnmarshalYAML accepts both numbers and strings.
func (e *Expr) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	if v == nil {
		*e = Expr{}
		return nil
	}
	x, err := ParseExpr(fmt.Sprint(v))
	if err != nil {
		return err
	}
	*e = x
	return nil
}

// MarshalYAML returns the expression source.
func (e Expr) MarshalYAML() (interface{}, error) {
	return e.src, nil
}

// IsZero reports whether the expression is missing.
func (e Expr) IsZero() bool {
	return e.expr == nil
}

func (e Expr) String() string {
	if e.expr == nil {
		return "0"
	}
	return e.src
}

// Eval evaluates the expression for a surface of the given size. Fractions
// are truncated toward zero.
func (e Expr) Eval(size image.Point) (int, error) {
	if e.expr == nil {
		return 0, nil
	}
	v, err := e.expr.Evaluate(map[string]interface{}{
		"width":  float64(size.X),
		"height": float64(size.Y),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: evaluate %q: %w", ErrInvalid, e.src, err)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: expression %q is not a number (%T)", ErrInvalid, e.src, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: expression %q out of range (%g)", ErrInvalid, e.src, f)
	}
	return int(f), nil
}

var functions = map[string]govaluate.ExpressionFunction{
	"min": func(args ...interface{}) (interface{}, error) {
		return fold("min", args, math.Min)
	},
	"max": func(args ...interface{}) (interface{}, error) {
		return fold("max", args, math.Max)
	},
}

func fold(name string, args []interface{}, f func(a, b float64) float64) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s expects at least one argument", name)
	}
	var out float64
	for i, arg := range args {
		v, ok := arg.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %d of %s must be numeric", i+1, name)
		}
		if i == 0 {
			out = v
		} else {
			out = f(out, v)
		}
	}
	return out, nil
}

// Load reads and validates the script at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(typeErr.Errors, "; "))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if s.Background != "" {
		c, err := pixel.ParseHex(s.Background)
		if err != nil {
			return nil, fmt.Errorf("%w: background: %w", ErrInvalid, err)
		}
		s.background = &c
	}
	for i := range s.Ops {
		if err := s.Ops[i].validate(); err != nil {
			return nil, fmt.Errorf("%w: op %d: %w", ErrInvalid, i+1, err)
		}
	}
	return &s, nil
}

func (op *Op) validate() error {
	var required []Expr
	switch op.Op {
	case "fill", "stroke":
		required = []Expr{op.W, op.H}
	case "hline", "vline":
		required = []Expr{op.Length}
	case "line":
		required = []Expr{op.X2, op.Y2}
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	for _, e := range required {
		if e.IsZero() {
			return fmt.Errorf("%s needs %s", op.Op, op.usage())
		}
	}

	c, err := pixel.ParseHex(op.Color)
	if err != nil {
		return err
	}
	op.color = c
	return nil
}

func (op *Op) usage() string {
	switch op.Op {
	case "fill", "stroke":
		return "w and h"
	case "hline", "vline":
		return "length"
	default:
		return "x2 and y2"
	}
}

// Run draws the scene onto dst, stopping at the first failing operation.
func (s *Scene) Run(dst fbtools.Surface) error {
	r := dst.Bounds()
	if s.background != nil {
		if err := draw.FillRect(dst, 0, 0, r.Dx(), r.Dy(), *s.background); err != nil {
			return fmt.Errorf("scene %s: background: %w", s.Name, err)
		}
	}
	for i := range s.Ops {
		if err := s.Ops[i].run(dst, r.Size()); err != nil {
			return fmt.Errorf("scene %s: op %d (%s): %w", s.Name, i+1, s.Ops[i].Op, err)
		}
	}
	return nil
}

func (op *Op) run(dst fbtools.Surface, size image.Point) error {
	var (
		v    [4]int
		args []Expr
	)
	switch op.Op {
	case "fill", "stroke":
		args = []Expr{op.X, op.Y, op.W, op.H}
	case "hline", "vline":
		args = []Expr{op.X, op.Y, op.Length}
	case "line":
		args = []Expr{op.X, op.Y, op.X2, op.Y2}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalid, op.Op)
	}
	for i, e := range args {
		var err error
		if v[i], err = e.Eval(size); err != nil {
			return err
		}
	}

	switch op.Op {
	case "fill":
		return draw.FillRect(dst, v[0], v[1], v[2], v[3], op.color)
	case "stroke":
		return draw.StrokeRect(dst, v[0], v[1], v[2], v[3], op.color)
	case "hline":
		return draw.HorizontalLine(dst, v[0], v[1], v[2], op.color)
	case "vline":
		return draw.VerticalLine(dst, v[0], v[1], v[2], op.color)
	default:
		return draw.Line(dst, image.Pt(v[0], v[1]), image.Pt(v[2], v[3]), op.color)
	}
}
