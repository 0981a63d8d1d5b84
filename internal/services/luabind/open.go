// Package luabind makes binding modules callable from Lua scripts.
//
// After Open, a script reaches the module either through the global of the
// same name or through require:
//
//	local m = require("pycpp_build")
//	print(m.add(1, 2))
package luabind

import (
	"github.com/Shopify/go-lua"
	"github.com/louisbranch/arithbind/internal/binding"
)

// Open registers module in state as a loaded package and a global table
// holding one Lua function per module function.
func Open(state *lua.State, module *binding.Module) {
	lua.Require(state, module.Name(), func(l *lua.State) int {
		lua.NewLibrary(l, moduleFunctions(module))
		return 1
	}, true)
	state.Pop(1)
}

func moduleFunctions(module *binding.Module) []lua.RegistryFunction {
	functions := module.Functions()
	out := make([]lua.RegistryFunction, 0, len(functions))
	for _, fn := range functions {
		out = append(out, lua.RegistryFunction{Name: fn.Name, Function: wrap(fn.Call)})
	}
	return out
}

// wrap marshals two integer arguments in and one integer result out.
// Non-numeric arguments raise a Lua argument error.
func wrap(call binding.Func) lua.Function {
	return func(l *lua.State) int {
		i := lua.CheckInteger(l, 1)
		j := lua.CheckInteger(l, 2)
		l.PushInteger(call(i, j))
		return 1
	}
}
