package binding

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/arithbind/internal/platform/errors"
)

func TestNewRegistersCoreFunctions(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			m, err := New(name)
			if err != nil {
				t.Fatalf("new module: %v", err)
			}
			if m.Name() != name {
				t.Fatalf("Name() = %q, want %q", m.Name(), name)
			}
			if got := m.FunctionNames(); !reflect.DeepEqual(got, []string{"add", "subtract"}) {
				t.Fatalf("FunctionNames() = %v", got)
			}
		})
	}
}

func TestModulesDifferOnlyByName(t *testing.T) {
	a := MustNew(PyCppBuild)
	b := MustNew(PythonCppExample)
	for _, fn := range a.Functions() {
		other, ok := b.Lookup(fn.Name)
		if !ok {
			t.Fatalf("%s missing %s", b.Name(), fn.Name)
		}
		if fn.Doc != other.Doc {
			t.Fatalf("doc mismatch for %s", fn.Name)
		}
		if fn.Call(7, 4) != other.Call(7, 4) {
			t.Fatalf("result mismatch for %s", fn.Name)
		}
	}
}

func TestCall(t *testing.T) {
	m := Default()
	cases := []struct {
		function string
		i, j     int
		want     int
	}{
		{"add", 2, 3, 5},
		{"subtract", 5, 3, 2},
		{"add", -1, 1, 0},
		{"add", 1, 1, 2},
		{"subtract", 1, 1, 0},
	}
	for _, tc := range cases {
		got, err := m.Call(tc.function, tc.i, tc.j)
		if err != nil {
			t.Fatalf("%s(%d, %d): %v", tc.function, tc.i, tc.j, err)
		}
		if got != tc.want {
			t.Errorf("%s(%d, %d) = %d, want %d", tc.function, tc.i, tc.j, got, tc.want)
		}
	}
}

func TestCallUnknownFunction(t *testing.T) {
	_, err := Default().Call("multiply", 2, 3)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeFunctionNotFound, "")) {
		t.Fatalf("expected function not found, got %v", err)
	}
}

func TestValidName(t *testing.T) {
	cases := map[string]bool{
		"pycpp_build":        true,
		"python_cpp_example": true,
		"_private":           true,
		"mod2":               true,
		"":                   false,
		"2mod":               false,
		"with-dash":          false,
		"dotted.name":        false,
		"spaced name":        false,
	}
	for name, want := range cases {
		if got := ValidName(name); got != want {
			t.Errorf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewRejectsInvalidName(t *testing.T) {
	_, err := New("not-valid")
	if apperrors.CodeOf(err) != apperrors.CodeModuleNameInvalid {
		t.Fatalf("expected invalid module name, got %v", err)
	}
}

func TestMustNewPanicsOnInvalidName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustNew("")
}

func TestOpen(t *testing.T) {
	m, err := Open(PythonCppExample)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if m.Name() != PythonCppExample {
		t.Fatalf("Name() = %q", m.Name())
	}
	if _, err := Open("unknown_module"); apperrors.CodeOf(err) != apperrors.CodeModuleNotFound {
		t.Fatalf("expected module not found, got %v", err)
	}
}

func TestFunctionsReturnsCopy(t *testing.T) {
	m := Default()
	fns := m.Functions()
	fns[0].Name = "mutated"
	if _, ok := m.Lookup("add"); !ok {
		t.Fatal("mutating the returned slice changed the module")
	}
}

func TestCallIsSafeForConcurrentUse(t *testing.T) {
	m := Default()
	var wg sync.WaitGroup
	for n := 0; n < 32; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := m.Call("add", n, n)
			if err != nil || got != 2*n {
				t.Errorf("add(%d, %d) = %d, %v", n, n, got, err)
			}
		}(n)
	}
	wg.Wait()
}
