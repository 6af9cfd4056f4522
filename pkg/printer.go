package funlang

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented tree of nodes to w, one node per line.
func Dump(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		if err := dump(w, n, 0); err != nil {
			return err
		}
	}

	return nil
}

func dump(w io.Writer, node Node, depth int) error {
	indent := strings.Repeat("  ", depth)

	var (
		line     string
		children []Node
	)

	switch e := node.(type) {
	case *NumberExpr:
		line = fmt.Sprintf("NumberExpr %d", e.Value)
	case *VariableExpr:
		line = "VariableExpr " + e.Name
	case *BinaryExpr:
		line = "BinaryExpr " + string(e.Operation)
		children = []Node{e.Op1, e.Op2}
	case *CallExpr:
		line = fmt.Sprintf("CallExpr %s (%d args)", e.Name, len(e.Args))
		children = e.Args
	case *FuncDecl:
		line = fmt.Sprintf("FuncDecl %s(%s)", e.Name, strings.Join(e.Params, " "))
		children = e.Body
	default:
		panic(fmt.Sprintf("unexpected node %T", node))
	}

	if _, err := fmt.Fprintf(w, "%s%s\n", indent, line); err != nil {
		return err
	}

	for _, c := range children {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}

	return nil
}
