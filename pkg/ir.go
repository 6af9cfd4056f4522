package funlang

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// IntType is the single value type of the language.
var IntType = types.I32

// LLVMIRBuilder owns the module under construction, its function table and
// the block new instructions are appended to. Arithmetic on two integer
// constants is folded instead of emitted.
type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	funcs  map[string]*ir.Func
	printf *ir.Func
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	return &LLVMIRBuilder{
		mod:   ir.NewModule(),
		funcs: make(map[string]*ir.Func),
	}
}

func (b *LLVMIRBuilder) Module() *ir.Module {
	return b.mod
}

// Const truncates v to the width of IntType.
func (b *LLVMIRBuilder) Const(v int64) *constant.Int {
	return constant.NewInt(IntType, int64(int32(v)))
}

// Func resolves a function by name. Builtins are declared the first time
// they are asked for.
func (b *LLVMIRBuilder) Func(name string) (*ir.Func, bool) {
	if f, ok := b.funcs[name]; ok {
		return f, true
	}

	def, ok := builtins[name]
	if !ok {
		return nil, false
	}

	defineBuiltinFunc(b, name, def)

	return b.funcs[name], true
}

// Defined reports whether name is taken by a function, a builtin or a
// declaration builtins depend on.
func (b *LLVMIRBuilder) Defined(name string) bool {
	_, isFunc := b.funcs[name]
	_, isBuiltin := builtins[name]

	return isFunc || isBuiltin || reserved[name]
}

// NewFunc declares name with one IntType parameter per entry of params.
func (b *LLVMIRBuilder) NewFunc(name string, params []string) *ir.Func {
	ps := make([]*ir.Param, len(params))
	for i, p := range params {
		ps[i] = ir.NewParam(p, IntType)
	}

	f := b.mod.NewFunc(name, IntType, ps...)
	b.funcs[name] = f

	return f
}

// RemoveFunc drops f from the module and the function table.
func (b *LLVMIRBuilder) RemoveFunc(f *ir.Func) {
	delete(b.funcs, f.Name())

	funcs := b.mod.Funcs[:0]
	for _, f2 := range b.mod.Funcs {
		if f2 != f {
			funcs = append(funcs, f2)
		}
	}

	b.mod.Funcs = funcs
}

func (b *LLVMIRBuilder) NewBlock(f *ir.Func) *ir.Block {
	return f.NewBlock("")
}

func (b *LLVMIRBuilder) SetInsertPoint(block *ir.Block) {
	b.block = block
}

func (b *LLVMIRBuilder) InsertPoint() *ir.Block {
	return b.block
}

func (b *LLVMIRBuilder) Add(x, y value.Value) value.Value {
	if c, ok := b.fold(x, y, func(a, b uint32) (uint32, bool) { return a + b, true }); ok {
		return c
	}

	return b.block.NewAdd(x, y)
}

func (b *LLVMIRBuilder) Sub(x, y value.Value) value.Value {
	if c, ok := b.fold(x, y, func(a, b uint32) (uint32, bool) { return a - b, true }); ok {
		return c
	}

	return b.block.NewSub(x, y)
}

func (b *LLVMIRBuilder) Mul(x, y value.Value) value.Value {
	if c, ok := b.fold(x, y, func(a, b uint32) (uint32, bool) { return a * b, true }); ok {
		return c
	}

	return b.block.NewMul(x, y)
}

// Div emits an exact unsigned division. Constants fold only when the
// division is defined and exact.
func (b *LLVMIRBuilder) Div(x, y value.Value) value.Value {
	c, ok := b.fold(x, y, func(a, b uint32) (uint32, bool) {
		if b == 0 || a%b != 0 {
			return 0, false
		}

		return a / b, true
	})
	if ok {
		return c
	}

	inst := b.block.NewUDiv(x, y)
	inst.Exact = true

	return inst
}

func (b *LLVMIRBuilder) Call(f *ir.Func, args []value.Value) value.Value {
	return b.block.NewCall(f, args...)
}

func (b *LLVMIRBuilder) Ret(v value.Value) {
	b.block.NewRet(v)
}

func (b *LLVMIRBuilder) fold(x, y value.Value, op func(a, b uint32) (uint32, bool)) (*constant.Int, bool) {
	cx, ok := x.(*constant.Int)
	if !ok {
		return nil, false
	}

	cy, ok := y.(*constant.Int)
	if !ok {
		return nil, false
	}

	r, ok := op(uint32(cx.X.Int64()), uint32(cy.X.Int64()))
	if !ok {
		return nil, false
	}

	return b.Const(int64(int32(r))), true
}
