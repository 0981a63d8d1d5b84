// Package greeting runs the hello.lua greetings against a binding module.
package greeting

import (
	_ "embed"
	"io"

	"github.com/louisbranch/arithbind/internal/binding"
	"github.com/louisbranch/arithbind/internal/services/luabind"
)

//go:embed hello.lua
var helloScript string

// Greeter prints greetings through one Lua runtime.
type Greeter struct {
	runtime *luabind.Runtime
}

// New loads hello.lua into a runtime with module opened. Output goes to w
// in the language selected by lang.
func New(module *binding.Module, w io.Writer, lang string) (*Greeter, error) {
	runtime := luabind.NewRuntime(module, luabind.WithOutput(w), luabind.WithLocale(lang))
	if err := runtime.RunString("hello.lua", helloScript); err != nil {
		return nil, err
	}
	return &Greeter{runtime: runtime}, nil
}

// SayHello prints the hello world greeting.
func (g *Greeter) SayHello() error {
	return g.runtime.CallGlobal("say_hello")
}

// SayHei prints the hei greeting, which calls add(1, 2) through the module.
func (g *Greeter) SayHei() error {
	return g.runtime.CallGlobal("say_hei")
}
