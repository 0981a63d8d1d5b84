// Package binding registers the arithmetic core under a named, externally
// callable surface.
//
// A Module is the single parameterized registration: every surface (Lua, MCP,
// gRPC, native exports) is built from one and exposes the same callable names.
package binding

import (
	"fmt"
	"sort"

	"github.com/louisbranch/arithbind/internal/arith"
	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
)

// Module names under which the functions are published.
const (
	PyCppBuild       = "pycpp_build"
	PythonCppExample = "python_cpp_example"
)

// Func is the native signature of every bound function.
type Func func(i, j int) int

// Function is one named callable in a module.
type Function struct {
	Name string
	Doc  string
	Call Func
}

// Module is an immutable set of functions published under a name.
type Module struct {
	name      string
	functions []Function
	index     map[string]int
}

var coreFunctions = []Function{
	{Name: "add", Doc: "Add two ints.", Call: arith.Add},
	{Name: "subtract", Doc: "Subtract two ints.", Call: arith.Subtract},
}

// New registers add and subtract under name.
func New(name string) (*Module, error) {
	if !ValidName(name) {
		return nil, apperrors.WithMetadata(apperrors.CodeModuleNameInvalid,
			fmt.Sprintf("module name %q is not a valid identifier", name),
			map[string]string{"Module": name})
	}
	m := &Module{
		name:      name,
		functions: make([]Function, len(coreFunctions)),
		index:     make(map[string]int, len(coreFunctions)),
	}
	copy(m.functions, coreFunctions)
	for i, fn := range m.functions {
		m.index[fn.Name] = i
	}
	return m, nil
}

// MustNew is like New but panics on an invalid name.
func MustNew(name string) *Module {
	m, err := New(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Names returns the module names the project publishes.
func Names() []string {
	return []string{PyCppBuild, PythonCppExample}
}

var defaultModule = MustNew(PyCppBuild)

// Default returns the pycpp_build module.
func Default() *Module {
	return defaultModule
}

// Open returns the published module with the given name.
func Open(name string) (*Module, error) {
	for _, known := range Names() {
		if known == name {
			return New(name)
		}
	}
	return nil, apperrors.WithMetadata(apperrors.CodeModuleNotFound,
		fmt.Sprintf("module %q is not registered", name),
		map[string]string{"Module": name})
}

// ValidName reports whether name can be used as a module name: an ASCII
// identifier that does not start with a digit.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Functions returns the module's functions in registration order.
func (m *Module) Functions() []Function {
	out := make([]Function, len(m.functions))
	copy(out, m.functions)
	return out
}

// FunctionNames returns the callable names, sorted.
func (m *Module) FunctionNames() []string {
	names := make([]string, 0, len(m.functions))
	for _, fn := range m.functions {
		names = append(names, fn.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the function registered under name.
func (m *Module) Lookup(name string) (Function, bool) {
	i, ok := m.index[name]
	if !ok {
		return Function{}, false
	}
	return m.functions[i], true
}

// Call invokes the function registered under name.
func (m *Module) Call(name string, i, j int) (int, error) {
	fn, ok := m.Lookup(name)
	if !ok {
		return 0, apperrors.WithMetadata(apperrors.CodeFunctionNotFound,
			fmt.Sprintf("module %s has no function %q", m.name, name),
			map[string]string{"Module": m.name, "Function": name})
	}
	return fn.Call(i, j), nil
}
