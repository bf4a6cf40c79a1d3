// Package scripting runs Lua motion scripts for obstacles.
package scripting

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	lua "github.com/yuin/gopher-lua"
)

//go:embed scripts/*.lua
var builtin embed.FS

// Engine wraps a single gopher-lua VM. It is owned by one game session and
// must only be used from the goroutine running that session.
type Engine struct {
	vm     *lua.LState
	log    *log.Logger
	failed map[string]bool
}

// NewEngine creates a VM with the built-in motion scripts loaded.
func NewEngine(logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:     vm,
		log:    logger.With("component", "scripting"),
		failed: make(map[string]bool),
	}
	if err := e.LoadFS(builtin, "scripts"); err != nil {
		vm.Close()
		return nil, fmt.Errorf("scripting: load builtin scripts: %w", err)
	}
	return e, nil
}

// LoadFS runs every .lua file in dir, in name order.
func (e *Engine) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		name := path.Join(dir, entry.Name())
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := e.LoadString(name, string(src)); err != nil {
			return err
		}
	}
	return nil
}

// LoadDir loads user scripts from disk. An empty or missing directory is
// not an error.
func (e *Engine) LoadDir(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	if err := e.LoadFS(os.DirFS(dir), "."); err != nil {
		return fmt.Errorf("scripting: load %s: %w", dir, err)
	}
	return nil
}

// LoadString runs a chunk of Lua source.
func (e *Engine) LoadString(name, src string) error {
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return fmt.Errorf("scripting: compile %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("scripting: run %s: %w", name, err)
	}
	e.log.Debug("loaded lua script", "file", name)
	return nil
}

// Has reports whether a global function with that name exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// Motion calls a motion function with (t, phase) and returns its offset.
// Missing return values count as zero. On any error the offset is zero and
// the failure is logged once per function.
func (e *Engine) Motion(name string, t, phase float64) mgl64.Vec3 {
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		e.fail(name, fmt.Errorf("function not found"))
		return mgl64.Vec3{}
	}

	top := e.vm.GetTop()
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    3,
		Protect: true,
	}, lua.LNumber(t), lua.LNumber(phase)); err != nil {
		e.vm.SetTop(top)
		e.fail(name, err)
		return mgl64.Vec3{}
	}

	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		out[i] = float64(lua.LVAsNumber(e.vm.Get(top + i + 1)))
	}
	e.vm.SetTop(top)
	return out
}

func (e *Engine) fail(name string, err error) {
	if e.failed[name] {
		return
	}
	e.failed[name] = true
	e.log.Error("lua motion failed, using zero offset", "func", name, "err", err)
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
