package funlang

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// toplevelName is not a valid identifier in source code, so user functions
// cannot collide with it.
const toplevelName = "__toplevel"

// Generator lowers nodes into an LLVM module. Global bindings persist
// between calls to Node, so a program can be fed to it one statement at a
// time.
type Generator struct {
	b       *LLVMIRBuilder
	globals *Scope
	values  *Scope

	toplevel *ir.Func
	last     value.Value
}

func NewGenerator() *Generator {
	globals := NewScope(nil)

	return &Generator{
		b:       NewLLVMIRBuilder(),
		globals: globals,
		values:  globals,
	}
}

// Generate lowers nodes in order and returns the finished module. On error
// the module holds everything generated before the failing node.
func (g *Generator) Generate(nodes []Node) (*ir.Module, error) {
	for _, node := range nodes {
		if _, err := g.Node(node); err != nil {
			return g.Module(), err
		}
	}

	return g.Module(), nil
}

// Module terminates the toplevel function with the last top-level value
// and returns the module. It may be called repeatedly.
func (g *Generator) Module() *ir.Module {
	if g.toplevel != nil {
		last := g.last
		if last == nil {
			last = g.b.Const(0)
		}

		g.toplevel.Blocks[len(g.toplevel.Blocks)-1].NewRet(last)
	}

	return g.b.Module()
}

// Toplevel is the function holding top-level statements, or nil before the
// first one.
func (g *Generator) Toplevel() *ir.Func {
	return g.toplevel
}

// Node lowers one top-level node. Function declarations yield their *ir.Func.
func (g *Generator) Node(node Node) (value.Value, error) {
	if decl, ok := node.(*FuncDecl); ok {
		f, err := g.function(decl)
		if err != nil {
			return nil, err
		}

		return f, nil
	}

	block := g.enterToplevel()
	mark := len(block.Insts)

	// bindings stay in stmt until the whole statement succeeds
	stmt := NewScope(g.globals)
	g.values = stmt

	defer func() {
		g.values = g.globals
	}()

	v, err := g.value(node)
	if err != nil {
		block.Insts = block.Insts[:mark]
		return nil, err
	}

	stmt.Commit()
	g.last = v

	return v, nil
}

func (g *Generator) enterToplevel() *ir.Block {
	if g.toplevel == nil {
		g.toplevel = g.b.Module().NewFunc(toplevelName, IntType)
		g.b.NewBlock(g.toplevel)
	}

	block := g.toplevel.Blocks[len(g.toplevel.Blocks)-1]
	g.b.SetInsertPoint(block)

	return block
}

func (g *Generator) function(decl *FuncDecl) (_ *ir.Func, err error) {
	if g.b.Defined(decl.Name) {
		return nil, &RedefinitionError{Kind: "function", Name: decl.Name}
	}

	seen := make(map[string]bool, len(decl.Params))
	for _, p := range decl.Params {
		if seen[p] {
			return nil, &RedefinitionError{Kind: "parameter", Name: p}
		}

		seen[p] = true
	}

	f := g.b.NewFunc(decl.Name, decl.Params)

	prevBlock := g.b.InsertPoint()
	g.b.SetInsertPoint(g.b.NewBlock(f))

	prevVals := g.values
	g.values = NewScope(g.globals.Constants())

	defer func() {
		g.b.SetInsertPoint(prevBlock)
		g.values = prevVals

		if err != nil {
			g.b.RemoveFunc(f)
		}
	}()

	for i, p := range f.Params {
		g.values.Set(decl.Params[i], p)
	}

	var last value.Value = g.b.Const(0)
	for _, stmt := range decl.Body {
		last, err = g.value(stmt)
		if err != nil {
			return nil, errors.Wrap(err, "function %s", decl.Name)
		}
	}

	g.b.Ret(last)

	tlog.V("codegen").Printw("function", "name", decl.Name, "params", decl.Params, "stmts", len(decl.Body))

	return f, nil
}

func (g *Generator) value(node Node) (value.Value, error) {
	switch e := node.(type) {
	case *NumberExpr:
		return g.b.Const(e.Value), nil
	case *VariableExpr:
		v, ok := g.values.Get(e.Name)
		if !ok {
			return nil, &UndefinedError{Kind: UndefinedVariable, Name: e.Name}
		}

		return v, nil
	case *BinaryExpr:
		return g.binaryExpression(e)
	case *CallExpr:
		return g.functionCall(e)
	case *FuncDecl:
		return nil, errors.New("nested function declaration: %s", e.Name)
	default:
		panic(fmt.Sprintf("unexpected node %T", node))
	}
}

func (g *Generator) binaryExpression(expr *BinaryExpr) (value.Value, error) {
	if expr.Operation == BinaryAssignment {
		return g.assignment(expr)
	}

	v1, err := g.value(expr.Op1)
	if err != nil {
		return nil, err
	}

	v2, err := g.value(expr.Op2)
	if err != nil {
		return nil, err
	}

	switch expr.Operation {
	case BinaryAddition:
		return g.b.Add(v1, v2), nil
	case BinarySubtraction:
		return g.b.Sub(v1, v2), nil
	case BinaryMultiplication:
		return g.b.Mul(v1, v2), nil
	case BinaryDivision:
		return g.b.Div(v1, v2), nil
	default:
		panic("unexpected binary op: " + expr.Operation)
	}
}

// assignment binds the target name and evaluates to the assigned value.
func (g *Generator) assignment(expr *BinaryExpr) (value.Value, error) {
	id, ok := expr.Op1.(*VariableExpr)
	if !ok {
		return nil, &AssignError{Target: expr.Op1}
	}

	v, err := g.value(expr.Op2)
	if err != nil {
		return nil, err
	}

	g.values.Set(id.Name, v)

	tlog.V("codegen").Printw("bind", "name", id.Name, "val", v)

	return v, nil
}

func (g *Generator) functionCall(expr *CallExpr) (value.Value, error) {
	f, ok := g.b.Func(expr.Name)
	if !ok {
		return nil, &UndefinedError{Kind: UndefinedFunction, Name: expr.Name}
	}

	if len(f.Params) != len(expr.Args) {
		return nil, &ArityError{Name: expr.Name, Want: len(f.Params), Got: len(expr.Args)}
	}

	args := make([]value.Value, 0, len(expr.Args))
	for _, arg := range expr.Args {
		v, err := g.value(arg)
		if err != nil {
			return nil, errors.Wrap(err, "call to %s", expr.Name)
		}

		args = append(args, v)
	}

	return g.b.Call(f, args), nil
}
