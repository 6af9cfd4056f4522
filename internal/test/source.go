package test

import (
	"math/rand"
	"strings"
)

const validTokens = "fun|add|x|y|counter|(|)|{|}|+|-|*|/|=|^|;|123|7|0|4294967296"

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, "|")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram returns size well-formed statements: function
// declarations followed by calls and arithmetic on them.
func GetRandomProgram(size int) string {
	var b strings.Builder

	b.WriteString("fun add(a b){a+b;}fun scale(a){a*3/3;}")

	vars := []string{"x", "y", "z"}
	for _, v := range vars {
		b.WriteString(v + "=1;")
	}

	for i := 0; i < size; i++ {
		v := vars[rand.Intn(len(vars))]
		w := vars[rand.Intn(len(vars))]

		switch rand.Intn(3) {
		case 0:
			b.WriteString(v + "=add(" + w + " 2);")
		case 1:
			b.WriteString(v + "=scale(" + w + ")-1;")
		default:
			b.WriteString(v + "=(" + w + "+4)*" + v + ";")
		}
	}

	return b.String()
}
