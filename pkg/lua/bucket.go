package lua

import (
	"runtime"

	glua "github.com/yuin/gopher-lua"
)

// vmBucket recycles interpreter states between validator runs. Creating an
// LState per probe is too expensive when the monitor fans out.
type vmBucket struct {
	size int
	vms  chan *glua.LState
}

var bucket = vmBucket{
	size: runtime.NumCPU(),
	vms:  make(chan *glua.LState, runtime.NumCPU()),
}

func init() {
	for range bucket.size {
		bucket.vms <- newState()
	}
}

// newState builds an interpreter with only the libraries response
// validators need. os and io stay closed.
func newState() *glua.LState {
	L := glua.NewState(glua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   glua.LGFunction
	}{
		{glua.BaseLibName, glua.OpenBase},
		{glua.StringLibName, glua.OpenString},
		{glua.TabLibName, glua.OpenTable},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(glua.LString(lib.name))
		L.Call(1, 0)
	}
	return L
}

func (b *vmBucket) get() *glua.LState {
	return <-b.vms
}

func (b *vmBucket) put(L *glua.LState) {
	b.vms <- L
}

func (b *vmBucket) shutdown() {
	close(b.vms)
	for L := range b.vms {
		L.Close()
	}
}
