package checks

import (
	"fmt"
	"io"
	"net/http"

	glua "github.com/yuin/gopher-lua"

	"github.com/browsekit/navigator/pkg/lua"
)

type Validator interface {
	Validate(resp *http.Response) error
}

// LuaValidator runs a user script against the probe response. The script
// sees status_code and body as globals and returns true to pass.
type LuaValidator struct {
	script string
}

func NewLuaValidator(script string) *LuaValidator {
	return &LuaValidator{script: script}
}

func (l *LuaValidator) Validate(resp *http.Response) error {
	vm := lua.Get()
	defer lua.Put(vm)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("unable to read response body: %w", err)
	}

	vm.SetGlobal("status_code", glua.LNumber(resp.StatusCode))
	vm.SetGlobal("body", glua.LString(body))

	if err := vm.DoString(l.script); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	ret := vm.Get(-1)
	vm.Pop(1)

	if ret == glua.LNil {
		return fmt.Errorf("script returned a nil value")
	}
	if ret == glua.LFalse {
		return fmt.Errorf("health-check failed")
	}

	return nil
}
