package prolog

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/cutprolog/prolog/engine"
)

// Solutions is the result of a query. Everytime the Next method is called, it searches for the next solution.
// By calling the Scan method, you can retrieve the content of the solution.
type Solutions struct {
	vars    []engine.ParsedVariable
	answers *engine.Answers
	err     error
}

// Close closes the Solutions and terminates the search for other solutions.
func (s *Solutions) Close() error {
	if s.answers == nil {
		return nil
	}
	return s.answers.Close()
}

// Next prepares the next solution for reading with the Scan method. It returns true if it finds another solution,
// or false if there's no further solutions or if there's an error.
func (s *Solutions) Next() bool {
	if s.answers == nil {
		return false
	}
	return s.answers.Next()
}

// Scan copies the variable values of the current solution into the specified struct/map.
func (s *Solutions) Scan(dest interface{}) error {
	o := reflect.ValueOf(dest)
	switch o.Kind() {
	case reflect.Ptr:
		o = o.Elem()
		switch o.Kind() {
		case reflect.Struct:
			return s.scanStruct(o)
		case reflect.Map:
			return s.scanMap(o)
		default:
			return errors.Errorf("invalid kind: %s", o.Kind())
		}
	case reflect.Map:
		return s.scanMap(o)
	default:
		return errors.Errorf("invalid kind: %s", o.Kind())
	}
}

func (s *Solutions) scanStruct(o reflect.Value) error {
	t := o.Type()
	fields := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("prolog"); ok {
			name = tag
		}
		fields[name] = o.Field(i)
	}

	env := s.env()
	for _, v := range s.vars {
		f, ok := fields[v.Name]
		if !ok {
			continue
		}
		val, err := convert(env.Simplify(v.Variable), f.Type(), env)
		if err != nil {
			return errors.Wrapf(err, "variable %s", v.Name)
		}
		f.Set(val)
	}
	return nil
}

var termType = reflect.TypeOf((*engine.Term)(nil)).Elem()

func (s *Solutions) scanMap(o reflect.Value) error {
	t := o.Type()
	if t.Key().Kind() != reflect.String {
		return errors.Errorf("invalid key type: %s", t.Key())
	}

	env := s.env()
	for _, v := range s.vars {
		val, err := convert(env.Simplify(v.Variable), t.Elem(), env)
		if err != nil {
			return errors.Wrapf(err, "variable %s", v.Name)
		}
		o.SetMapIndex(reflect.ValueOf(v.Name), val)
	}
	return nil
}

func convert(t engine.Term, typ reflect.Type, env *engine.Env) (reflect.Value, error) {
	if typ == termType {
		return reflect.ValueOf(&t).Elem(), nil
	}

	switch typ.Kind() {
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			break
		}
		var i interface{} = t
		switch t := t.(type) {
		case engine.Atom:
			i = string(t)
		case engine.Number:
			i = float64(t)
		case *engine.Compound:
			if ts, ok := engine.Slice(t, env); ok {
				es := make([]interface{}, len(ts))
				for j, e := range ts {
					v, err := convert(e, typ, env)
					if err != nil {
						return reflect.Value{}, err
					}
					es[j] = v.Interface()
				}
				i = es
			}
		}
		return reflect.ValueOf(&i).Elem(), nil
	case reflect.String:
		if a, ok := t.(engine.Atom); ok {
			return reflect.ValueOf(string(a)).Convert(typ), nil
		}
	case reflect.Float32, reflect.Float64:
		if n, ok := t.(engine.Number); ok {
			return reflect.ValueOf(float64(n)).Convert(typ), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := t.(engine.Number); ok && n == engine.Number(int64(n)) {
			return reflect.ValueOf(int64(n)).Convert(typ), nil
		}
	case reflect.Slice:
		if ts, ok := engine.Slice(t, env); ok {
			s := reflect.MakeSlice(typ, len(ts), len(ts))
			for j, e := range ts {
				v, err := convert(env.Simplify(e), typ.Elem(), env)
				if err != nil {
					return reflect.Value{}, err
				}
				s.Index(j).Set(v)
			}
			return s, nil
		}
	}
	return reflect.Value{}, errors.Errorf("can't convert %s to %s", t, typ)
}

// Err returns the error if exists.
func (s *Solutions) Err() error {
	if s.err != nil {
		return s.err
	}
	if s.answers == nil {
		return nil
	}
	return s.answers.Err()
}

// Vars returns variable names.
func (s *Solutions) Vars() []string {
	ns := make([]string, len(s.vars))
	for i, v := range s.vars {
		ns[i] = v.Name
	}
	return ns
}

// Bindings returns the variables bound in the current solution. An empty result for a solution means the query
// simply succeeded.
func (s *Solutions) Bindings() map[string]engine.Term {
	env := s.env()
	b := map[string]engine.Term{}
	for _, v := range s.vars {
		val := env.Simplify(v.Variable)
		if w, ok := val.(engine.Variable); ok && w == v.Variable {
			continue
		}
		b[v.Name] = val
	}
	return b
}

func (s *Solutions) env() *engine.Env {
	if s.answers == nil {
		return nil
	}
	return s.answers.Env()
}

// Solution is the single result of a query.
type Solution struct {
	sols *Solutions
	err  error
}

// Scan copies the variable values of the solution into the specified struct/map.
func (s *Solution) Scan(dest interface{}) error {
	if err := s.err; err != nil {
		return err
	}
	return s.sols.Scan(dest)
}

// Bindings returns the variables bound in the solution.
func (s *Solution) Bindings() map[string]engine.Term {
	if s.err != nil {
		return nil
	}
	return s.sols.Bindings()
}

// Err returns an error that occurred while querying for the Solution, if any.
func (s *Solution) Err() error {
	return s.err
}
