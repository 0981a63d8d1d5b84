//go:build cgo

// Command libarith builds the bindings as a C shared library:
//
//	go build -buildmode=c-shared -o libarith.so ./cmd/libarith
//
// The library exports add and subtract over C int, loadable from ctypes,
// cffi or any C caller.
package main

import "C"

import "github.com/louisbranch/arithbind/internal/binding"

var module = binding.Default()

//export add
func add(i, j C.int) C.int {
	return C.int(call("add", int(i), int(j)))
}

//export subtract
func subtract(i, j C.int) C.int {
	return C.int(call("subtract", int(i), int(j)))
}

func call(name string, i, j int) int {
	fn, _ := module.Lookup(name)
	return fn.Call(i, j)
}

func main() {}
