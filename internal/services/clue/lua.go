package clue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/mcoot/codenames/internal/model"
)

// luaEntryPoint is the function a spymaster script must define. It is
// called with the board table and returns the clue word and number.
const luaEntryPoint = "give_clue"

// LuaProvider runs a Lua spymaster script. Each request gets a fresh
// interpreter so scripts cannot leak state between turns.
type LuaProvider struct {
	name   string
	source string
	risk   RiskMode
	logger *slog.Logger
}

// NewLuaProvider loads the script at path
func NewLuaProvider(path string, risk RiskMode, logger *slog.Logger) (*LuaProvider, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewLuaProviderFromSource(path, string(source), risk, logger), nil
}

// NewLuaProviderFromSource creates a provider from script source; name is
// used in log lines and errors
func NewLuaProviderFromSource(name, source string, risk RiskMode, logger *slog.Logger) *LuaProvider {
	return &LuaProvider{
		name:   name,
		source: source,
		risk:   risk,
		logger: logger.With(slog.String("component", "lua-spymaster"), slog.String("script", name)),
	}
}

var _ Provider = (*LuaProvider)(nil)

// RequestClue evaluates the script and calls give_clue(board)
func (p *LuaProvider) RequestClue(ctx context.Context, view model.BoardView) (model.Clue, error) {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	L.SetGlobal("codenames_log", L.NewFunction(p.luaLog))

	if err := L.DoString(p.source); err != nil {
		return model.Clue{}, unavailable("lua", err)
	}

	fn := L.GetGlobal(luaEntryPoint)
	if fn.Type() != lua.LTFunction {
		return model.Clue{}, unavailable("lua", fmt.Errorf("%s does not define %s", p.name, luaEntryPoint))
	}

	board := boardTable(L, NewRequest(view, p.risk))
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true}, board); err != nil {
		return model.Clue{}, unavailable("lua", err)
	}
	word, number := L.Get(-2), L.Get(-1)
	L.Pop(2)

	w, ok := word.(lua.LString)
	if !ok {
		return model.Clue{}, unavailable("lua", errors.New("clue word is not a string"))
	}
	n, ok := number.(lua.LNumber)
	if !ok {
		return model.Clue{}, unavailable("lua", errors.New("clue number is not a number"))
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return model.Clue{}, unavailable("lua", fmt.Errorf("clue number %v is not a whole number", f))
	}

	return model.Clue{Word: string(w), Count: int(n), Team: view.Team}, nil
}

func (p *LuaProvider) luaLog(L *lua.LState) int {
	p.logger.Info("script log", slog.String("message", L.ToString(1)))
	return 0
}

// boardTable mirrors the JSON request as a Lua table
func boardTable(L *lua.LState, req Request) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("team", lua.LString(req.Team))
	t.RawSetString("risk", lua.LString(req.Risk))
	t.RawSetString("assassin", lua.LString(req.Assassin))
	t.RawSetString("red_words", stringList(L, req.RedWords))
	t.RawSetString("blue_words", stringList(L, req.BlueWords))
	t.RawSetString("neutral_words", stringList(L, req.NeutralWords))
	t.RawSetString("revealed", stringList(L, req.Revealed))
	return t
}

func stringList(L *lua.LState, items []string) *lua.LTable {
	t := L.CreateTable(len(items), 0)
	for _, item := range items {
		t.Append(lua.LString(item))
	}
	return t
}
