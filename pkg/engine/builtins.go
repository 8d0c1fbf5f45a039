package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/implicit/pkg/geom"
	"github.com/chazu/implicit/pkg/kernel/sdfx"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms console script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: check-point -> check_point
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Custom Sexp types and value extraction
// ---------------------------------------------------------------------------

// sexpEntity wraps a geom.Entity so script values can refer to it.
type sexpEntity struct {
	e geom.Entity
}

func (s *sexpEntity) SexpString(ps *zygo.PrintState) string {
	kind := "entity"
	switch s.e.(type) {
	case *geom.Line:
		kind = "line"
	case *geom.Hyperplane:
		kind = "hyperplane"
	}
	if s.e.Disposed() {
		return fmt.Sprintf("(%s #%d disposed)", kind, s.e.ID())
	}
	return fmt.Sprintf("(%s #%d)", kind, s.e.ID())
}
func (s *sexpEntity) Type() *zygo.RegisteredType { return nil }

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toFloats extracts a float64 slice from a list of Sexps.
func toFloats(args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toEntity extracts a geom.Entity from a sexpEntity.
func toEntity(s zygo.Sexp) (geom.Entity, error) {
	if ref, ok := s.(*sexpEntity); ok {
		return ref.e, nil
	}
	return nil, fmt.Errorf("expected entity reference, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Session state
// ---------------------------------------------------------------------------

// session holds the per-evaluation entity state the builtins operate on.
type session struct {
	ids    geom.Counter
	col    *geom.Collection
	kern   *sdfx.SdfxKernel
	report []string
}

func newSession() *session {
	return &session{
		col:  geom.NewCollection(),
		kern: sdfx.New(),
	}
}

func (s *session) say(format string, args ...interface{}) {
	s.report = append(s.report, fmt.Sprintf(format, args...))
}

// warnIfInvalid appends the validation message after a construction or
// coefficient change left the entity invalid. Non-fatal.
func (s *session) warnIfInvalid(e geom.Entity) {
	valid, err := e.IsValid()
	if err != nil || valid {
		return
	}
	msg, _ := e.ValidationMessage()
	s.say("warning: %s", msg)
}

// coefficientsFrom resolves positional and keyword coefficient arguments
// for the line/hyperplane constructors. Keywords a0..a4 override their
// positional counterparts.
func coefficientsFrom(pa kwArgs, n int, what string) ([]float64, error) {
	coeffs := make([]float64, n)
	if len(pa.positional) != 0 {
		if len(pa.positional) != n {
			return nil, fmt.Errorf("%s requires %d coefficients, got %d", what, n, len(pa.positional))
		}
		pos, err := toFloats(pa.positional)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		copy(coeffs, pos)
	}
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("a%d", i)
		if v, ok := pa.kw[key]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", what, key, err)
			}
			coeffs[i] = f
		}
	}
	return coeffs, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the console builtins into a zygomys environment.
// The builtins operate on the provided session, constructing entities from
// its counter and handing them to its collection.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *session) {

	// -----------------------------------------------------------------------
	// (line) | (line a0 a1 a2) | (line :a0 1 :a1 2 :a2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		coeffs, err := coefficientsFrom(parseArgs(args), 3, "line")
		if err != nil {
			return zygo.SexpNull, err
		}
		l := geom.NewLineWith(&s.ids, coeffs[0], coeffs[1], coeffs[2])
		s.warnIfInvalid(l)
		return &sexpEntity{e: l}, nil
	})

	// -----------------------------------------------------------------------
	// (hyperplane) | (hyperplane a0 a1 a2 a3 a4) | keyword form
	// -----------------------------------------------------------------------
	env.AddFunction("hyperplane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		coeffs, err := coefficientsFrom(parseArgs(args), 5, "hyperplane")
		if err != nil {
			return zygo.SexpNull, err
		}
		h := geom.NewHyperplaneWith(&s.ids, coeffs[0], coeffs[1], coeffs[2], coeffs[3], coeffs[4])
		s.warnIfInvalid(h)
		return &sexpEntity{e: h}, nil
	})

	// -----------------------------------------------------------------------
	// (clone ref)
	// -----------------------------------------------------------------------
	env.AddFunction("clone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("clone requires an entity argument")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("clone: %w", err)
		}
		c, err := e.Clone()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("clone: %w", err)
		}
		return &sexpEntity{e: c}, nil
	})

	// -----------------------------------------------------------------------
	// (set-coeffs ref a0 a1 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("set_coeffs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("set-coeffs requires an entity and coefficients")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-coeffs: %w", err)
		}
		coeffs, err := toFloats(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("set-coeffs: %w", err)
		}
		if err := e.SetCoefficients(coeffs); err != nil {
			return zygo.SexpNull, fmt.Errorf("set-coeffs: %w", err)
		}
		s.warnIfInvalid(e)
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (coeffs ref)
	// -----------------------------------------------------------------------
	env.AddFunction("coeffs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("coeffs requires an entity argument")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coeffs: %w", err)
		}
		coeffs, err := e.Coefficients()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("coeffs: %w", err)
		}
		vals := make([]zygo.Sexp, len(coeffs))
		for i, c := range coeffs {
			vals[i] = &zygo.SexpFloat{Val: c}
		}
		return &zygo.SexpArray{Val: vals, Env: env}, nil
	})

	// -----------------------------------------------------------------------
	// (contains ref x y ...) — one coordinate per entity dimension
	// -----------------------------------------------------------------------
	env.AddFunction("contains", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("contains requires an entity and a point")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		point, err := toFloats(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		ok, err := e.ContainsPoint(point)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// -----------------------------------------------------------------------
	// (distance ref x y ...)
	// -----------------------------------------------------------------------
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("distance requires an entity and a point")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: %w", err)
		}
		point, err := toFloats(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: %w", err)
		}
		d, err := e.DistanceToPoint(point)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: %w", err)
		}
		return &zygo.SexpFloat{Val: d}, nil
	})

	// -----------------------------------------------------------------------
	// (valid ref) / (validation ref)
	// -----------------------------------------------------------------------
	env.AddFunction("valid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("valid requires an entity argument")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("valid: %w", err)
		}
		ok, err := e.IsValid()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("valid: %w", err)
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	env.AddFunction("validation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("validation requires an entity argument")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("validation: %w", err)
		}
		msg, err := e.ValidationMessage()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("validation: %w", err)
		}
		return &zygo.SexpStr{S: msg}, nil
	})

	// -----------------------------------------------------------------------
	// (similar a b)
	// -----------------------------------------------------------------------
	env.AddFunction("similar", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("similar requires two entity arguments")
		}
		a, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("similar: %w", err)
		}
		b, err := toEntity(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("similar: %w", err)
		}
		ok, err := a.IsSimilar(b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("similar: %w", err)
		}
		return &zygo.SexpBool{Val: ok}, nil
	})

	// -----------------------------------------------------------------------
	// (dispose ref) — idempotent
	// -----------------------------------------------------------------------
	env.AddFunction("dispose", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("dispose requires an entity argument")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dispose: %w", err)
		}
		e.Dispose()
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (add ref) — hand ownership to the session collection
	// -----------------------------------------------------------------------
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("add requires an entity argument")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: %w", err)
		}
		accepted := s.col.Add(e)
		if !accepted {
			s.say("add rejected: entity %d is disposed or the collection is closed", e.ID())
		}
		return &zygo.SexpBool{Val: accepted}, nil
	})

	// -----------------------------------------------------------------------
	// (owned) / (created)
	// -----------------------------------------------------------------------
	env.AddFunction("owned", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(s.col.Count())}, nil
	})

	env.AddFunction("created", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(s.ids.Total())}, nil
	})

	// -----------------------------------------------------------------------
	// (check-point x y ...) — sweep the collection, report per entity
	// -----------------------------------------------------------------------
	env.AddFunction("check_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		point, err := toFloats(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("check-point: %w", err)
		}
		results := s.col.CheckPoint(point)
		for _, r := range results {
			switch {
			case r.Skipped:
				s.say("entity %d (%d-d): skipped", r.ID, r.Dimension)
			case r.Err != nil:
				s.say("entity %d (%d-d): contains=%t distance error: %v", r.ID, r.Dimension, r.Contains, r.Err)
			default:
				s.say("entity %d (%d-d): contains=%t distance=%.6g", r.ID, r.Dimension, r.Contains, r.Distance)
			}
		}
		return &zygo.SexpInt{Val: int64(len(results))}, nil
	})

	// -----------------------------------------------------------------------
	// (demo) — exercise the full contract on every owned entity
	// -----------------------------------------------------------------------
	env.AddFunction("demo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		results := s.col.Demonstrate()
		for _, d := range results {
			if d.Skipped {
				s.say("entity %d (%d-d): skipped (disposed)", d.ID, d.Dimension)
				continue
			}
			s.say("entity %d (%d-d): %s; coeffs=%v", d.ID, d.Dimension, d.Message, d.Coefficients)
			if d.DistanceErr != nil {
				s.say("entity %d: origin distance error: %v", d.ID, d.DistanceErr)
			} else {
				s.say("entity %d: origin distance=%.6g", d.ID, d.Distance)
			}
			if d.CloneErr != nil {
				s.say("entity %d: clone error: %v", d.ID, d.CloneErr)
			} else {
				s.say("entity %d: cloned as %d", d.ID, d.CloneID)
			}
		}
		return &zygo.SexpInt{Val: int64(len(results))}, nil
	})

	// -----------------------------------------------------------------------
	// (teardown) — dispose every owned entity now, idempotent
	// -----------------------------------------------------------------------
	env.AddFunction("teardown", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s.col.Close()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (sample-field ref nx ny) — sample the line's signed distance field.
	// Not named "field": that symbol is reserved by zygomys for its hash
	// constructor, so a builtin registered under it is unreachable.
	// -----------------------------------------------------------------------
	env.AddFunction("sample_field", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("sample-field requires a line and grid dimensions")
		}
		e, err := toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sample-field: %w", err)
		}
		l, ok := e.(*geom.Line)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("sample-field: only 2-d lines have a planar field")
		}
		nx, err := toInt(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sample-field: nx: %w", err)
		}
		ny, err := toInt(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sample-field: ny: %w", err)
		}

		f, err := s.kern.FromLine(l)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sample-field: %w", err)
		}
		grid, err := s.kern.Sample(f, nx, ny)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sample-field: %w", err)
		}

		summary := fmt.Sprintf("field of entity %d: %dx%d samples over (%.6g, %.6g)..(%.6g, %.6g), min=%.6g max=%.6g",
			l.ID(), grid.Nx, grid.Ny, grid.Min[0], grid.Min[1], grid.Max[0], grid.Max[1],
			grid.MinValue(), grid.MaxValue())
		s.say("%s", summary)
		return &zygo.SexpStr{S: summary}, nil
	})
}
