package funlang

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

type funcDefinition = func(b *LLVMIRBuilder) *ir.Func

const printfName = "printf"

var builtins = map[string]funcDefinition{
	"print": builtinPrint,
}

// reserved names are declared by builtins and cannot be defined or called
// from source code.
var reserved = map[string]bool{
	printfName: true,
}

func defineBuiltinFunc(b *LLVMIRBuilder, name string, definition funcDefinition) {
	f := definition(b)
	f.SetName(name)
	b.funcs[name] = f
}

// builtinPrint prints its argument followed by a newline and returns it.
func builtinPrint(b *LLVMIRBuilder) *ir.Func {
	f := b.mod.NewFunc("", IntType, ir.NewParam("v", IntType))
	block := f.NewBlock("")

	zero := constant.NewInt(types.I32, 0)

	format := constant.NewCharArrayFromString("%d\n\x00")
	formatGlob := b.mod.NewGlobalDef(".fmt.print", format)
	formatGlob.Immutable = true

	fmtAddr := constant.NewGetElementPtr(format.Typ, formatGlob, zero, zero)

	block.NewCall(declarePrintf(b), fmtAddr, f.Params[0])
	block.NewRet(f.Params[0])

	return f
}

func declarePrintf(b *LLVMIRBuilder) *ir.Func {
	if b.printf == nil {
		b.printf = b.mod.NewFunc(printfName, types.I32, ir.NewParam("format", types.I8Ptr))
		b.printf.Sig.Variadic = true
	}

	return b.printf
}
