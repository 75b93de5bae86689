package treesitter

import "strings"

// Kotlin grammar node types used to locate script blocks.
const (
	nodeSourceFile       = "source_file"
	nodeStatements       = "statements"
	nodeCallExpression   = "call_expression"
	nodeCallSuffix       = "call_suffix"
	nodeAnnotatedLambda  = "annotated_lambda"
	nodeLambdaLiteral    = "lambda_literal"
	nodeSimpleIdentifier = "simple_identifier"
)

// Statements returns the statements directly under scope, which is a
// source_file or a lambda_literal. Comments and punctuation are skipped.
func Statements(scope Node) []Node {
	if scope == nil || scope.IsNull() {
		return nil
	}
	if scope.Type() != nodeSourceFile {
		body := childOfType(scope, nodeStatements)
		if body == nil {
			return nil
		}
		scope = body
	}

	var out []Node
	for i := uint32(0); i < scope.ChildCount(); i++ {
		c := scope.Child(i)
		if c == nil || !c.IsNamed() || strings.HasSuffix(c.Type(), "comment") {
			continue
		}
		out = append(out, c)
	}
	return out
}

// BlockCalls returns the lambda_literal of every `name { ... }` call among
// the statements directly under scope, in source order.
func BlockCalls(scope Node, source []byte, name string) []Node {
	var out []Node
	for _, stmt := range Statements(scope) {
		if stmt.Type() != nodeCallExpression || stmt.ChildCount() < 2 {
			continue
		}
		callee := stmt.Child(0)
		if callee == nil || callee.Type() != nodeSimpleIdentifier || callee.Content(source) != name {
			continue
		}
		suffix := stmt.Child(stmt.ChildCount() - 1)
		if suffix == nil || suffix.Type() != nodeCallSuffix {
			continue
		}
		if lambda := childOfType(childOfType(suffix, nodeAnnotatedLambda), nodeLambdaLiteral); lambda != nil {
			out = append(out, lambda)
		}
	}
	return out
}

func childOfType(n Node, typ string) Node {
	if n == nil || n.IsNull() {
		return nil
	}
	for i := uint32(0); i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Type() == typ {
			return c
		}
	}
	return nil
}
