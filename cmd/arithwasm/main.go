//go:build wasip1

// Command arithwasm builds the bindings as a WebAssembly reactor:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o arith.wasm ./cmd/arithwasm
//
// Hosts call the exported add and subtract functions over int32.
package main

import "github.com/louisbranch/arithbind/internal/binding"

var module = binding.Default()

//go:wasmexport add
func add(i, j int32) int32 {
	return call("add", i, j)
}

//go:wasmexport subtract
func subtract(i, j int32) int32 {
	return call("subtract", i, j)
}

func call(name string, i, j int32) int32 {
	fn, _ := module.Lookup(name)
	return int32(fn.Call(int(i), int(j)))
}

func main() {}
