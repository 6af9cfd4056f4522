package funlang

// Node is one of *NumberExpr, *VariableExpr, *BinaryExpr, *CallExpr or
// *FuncDecl. The set is closed: only this package implements it.
type Node interface {
	node()
}

type NumberExpr struct {
	Value int64
}

type VariableExpr struct {
	Name string
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryAssignment     BinaryOp = "="
)

var binaryOpTable = map[TokenType]BinaryOp{
	TokenPlus:   BinaryAddition,
	TokenMinus:  BinarySubtraction,
	TokenMulti:  BinaryMultiplication,
	TokenDiv:    BinaryDivision,
	TokenAssign: BinaryAssignment,
}

// Binding powers for precedence climbing. Tokens missing here end a
// binary expression.
var precedenceTable = map[BinaryOp]int{
	BinaryAddition:       10,
	BinarySubtraction:    10,
	BinaryMultiplication: 20,
	BinaryDivision:       20,
	BinaryAssignment:     20,
}

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Node
	Op2       Node
}

type CallExpr struct {
	Name string
	Args []Node
}

type FuncDecl struct {
	Name   string
	Params []string
	Body   []Node
}

func (*NumberExpr) node()   {}
func (*VariableExpr) node() {}
func (*BinaryExpr) node()   {}
func (*CallExpr) node()     {}
func (*FuncDecl) node()     {}
