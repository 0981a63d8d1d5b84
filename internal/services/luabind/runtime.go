package luabind

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/louisbranch/arithbind/internal/binding"
	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
	"github.com/louisbranch/arithbind/internal/platform/i18n/catalog"
	"golang.org/x/text/message"
)

// ModuleGlobal names the global holding the opened module's name.
const ModuleGlobal = "binding_module"

// Runtime is a Lua state with one binding module opened. A Runtime is not
// safe for concurrent use.
type Runtime struct {
	state   *lua.State
	module  *binding.Module
	out     io.Writer
	locale  string
	printer *message.Printer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sends print output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithLocale selects the locale used by tr.
func WithLocale(locale string) Option {
	return func(r *Runtime) {
		r.locale = locale
	}
}

// NewRuntime creates a Lua state with the standard libraries and module.
func NewRuntime(module *binding.Module, opts ...Option) *Runtime {
	r := &Runtime{
		state:  lua.NewState(),
		module: module,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.printer = catalog.Default().Printer(r.locale)

	lua.OpenLibraries(r.state)
	Open(r.state, module)
	r.state.Register("print", r.print)
	r.state.Register("tr", r.translate)
	r.state.PushString(module.Name())
	r.state.SetGlobal(ModuleGlobal)
	return r
}

// State returns the underlying Lua state.
func (r *Runtime) State() *lua.State {
	return r.state
}

// Module returns the opened module.
func (r *Runtime) Module() *binding.Module {
	return r.module
}

// RunString loads and runs source; name labels the chunk in errors.
func (r *Runtime) RunString(name, source string) error {
	if err := lua.LoadBuffer(r.state, source, name, ""); err != nil {
		return r.scriptError(name, "load", err)
	}
	return r.call(name, 0)
}

// RunFile loads and runs the script at path.
func (r *Runtime) RunFile(path string) error {
	if err := lua.LoadFile(r.state, path, ""); err != nil {
		return r.scriptError(path, "load", err)
	}
	return r.call(path, 0)
}

// CallGlobal calls the global function name with integer arguments.
func (r *Runtime) CallGlobal(name string, args ...int) error {
	r.state.Global(name)
	if !r.state.IsFunction(-1) {
		r.state.Pop(1)
		return apperrors.WithMetadata(apperrors.CodeScriptFailed,
			fmt.Sprintf("global %q is not a function", name),
			map[string]string{"Script": name})
	}
	for _, arg := range args {
		r.state.PushInteger(arg)
	}
	return r.call(name, len(args))
}

func (r *Runtime) call(name string, nargs int) error {
	if err := r.state.ProtectedCall(nargs, 0, 0); err != nil {
		return r.scriptError(name, "run", err)
	}
	return nil
}

func (r *Runtime) scriptError(name, stage string, err error) error {
	r.state.SetTop(0)
	return &apperrors.Error{
		Code:     apperrors.CodeScriptFailed,
		Message:  fmt.Sprintf("%s lua %s: %v", stage, name, err),
		Metadata: map[string]string{"Script": name},
		Cause:    err,
	}
}

// print writes its arguments separated by tabs, like the standard print.
func (r *Runtime) print(l *lua.State) int {
	n := l.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, ok := lua.ToStringMeta(l, i)
		l.Pop(1)
		if !ok {
			lua.Errorf(l, "'tostring' must return a string to 'print'")
		}
		parts = append(parts, s)
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}

// translate implements tr(key, ...): the localized message for key with the
// remaining arguments substituted.
func (r *Runtime) translate(l *lua.State) int {
	key := lua.CheckString(l, 1)
	args := make([]any, 0, l.Top()-1)
	for i := 2; i <= l.Top(); i++ {
		args = append(args, luaValue(l, i))
	}
	l.PushString(r.printer.Sprintf(key, args...))
	return 1
}

func luaValue(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
			return int(n)
		}
		return n
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNil:
		return nil
	default:
		s, _ := lua.ToStringMeta(l, index)
		l.Pop(1)
		return s
	}
}
