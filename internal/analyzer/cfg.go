package analyzer

import "github.com/lppc/transpiler/internal/ast"

// CFGNodeType distinguishes control-flow node roles, grounded on
// original_source/include/StaticAnalyzer.h's CFGNode::Type enum.
type CFGNodeType int

const (
	NodeEntry CFGNodeType = iota
	NodeExit
	NodeStatement
	NodeBranch
	NodeMerge
	NodeLoopHead
)

// CFGNode is one control-flow graph node. StateIn/StateOut are not filled by
// this package: the symbolic-state checks walk the statement tree directly
// rather than iterating over the CFG, which is used for reachability only.
type CFGNode struct {
	ID            int
	Type          CFGNodeType
	Stmt          ast.Statement
	Condition     ast.Expression
	Successors    []*CFGNode
	Predecessors  []*CFGNode
	StateIn       map[string]SymbolicValue
	StateOut      map[string]SymbolicValue
	Reachable     bool
}

// CFG is the control-flow graph for a single function body.
type CFG struct {
	Nodes []*CFGNode
	Entry *CFGNode
	Exit  *CFGNode
}

func (c *CFG) newNode(t CFGNodeType) *CFGNode {
	n := &CFGNode{ID: len(c.Nodes), Type: t}
	c.Nodes = append(c.Nodes, n)
	return n
}

func connect(from, to *CFGNode) {
	if from == nil || to == nil || from == to {
		return
	}
	from.Successors = append(from.Successors, to)
	to.Predecessors = append(to.Predecessors, from)
}

// buildCFG builds the control-flow graph for a function body (spec §4.5),
// grounded on StaticAnalyzer::buildCFG. Loop bodies get a single back edge
// to their head node; branch/merge nodes model if/try arms.
func buildCFG(stmts []ast.Statement) *CFG {
	cfg := &CFG{}
	entry := cfg.newNode(NodeEntry)
	exit := cfg.newNode(NodeExit)
	cfg.Entry, cfg.Exit = entry, exit
	last := buildBlock(cfg, entry, stmts)
	connect(last, exit)
	return cfg
}

func buildBlock(cfg *CFG, pred *CFGNode, stmts []ast.Statement) *CFGNode {
	cur := pred
	terminated := false
	for _, s := range stmts {
		if terminated {
			// Unreachable: still gets a node (for the dead-code check to
			// report on), but intentionally left disconnected from cur.
			node := cfg.newNode(NodeStatement)
			node.Stmt = s
			continue
		}
		cur = buildStmt(cfg, cur, s)
		if isTerminal(s) {
			terminated = true
		}
	}
	return cur
}

func isTerminal(s ast.Statement) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return true
	}
	return false
}

func buildStmt(cfg *CFG, pred *CFGNode, s ast.Statement) *CFGNode {
	switch n := s.(type) {
	case *ast.IfStmt:
		branch := cfg.newNode(NodeBranch)
		branch.Condition = n.Cond
		connect(pred, branch)
		merge := cfg.newNode(NodeMerge)
		if n.Then != nil {
			thenEnd := buildBlock(cfg, branch, n.Then.Statements)
			connect(thenEnd, merge)
		} else {
			connect(branch, merge)
		}
		switch e := n.Else.(type) {
		case nil:
			connect(branch, merge)
		case *ast.BlockStmt:
			connect(buildBlock(cfg, branch, e.Statements), merge)
		case ast.Statement:
			connect(buildStmt(cfg, branch, e), merge)
		}
		return merge

	case *ast.WhileStmt:
		head := cfg.newNode(NodeLoopHead)
		head.Condition = n.Cond
		connect(pred, head)
		var bodyEnd *CFGNode
		if n.Body != nil {
			bodyEnd = buildBlock(cfg, head, n.Body.Statements)
		} else {
			bodyEnd = head
		}
		connect(bodyEnd, head)
		after := cfg.newNode(NodeMerge)
		connect(head, after)
		return after

	case *ast.DoWhileStmt:
		first := cfg.newNode(NodeStatement)
		connect(pred, first)
		var bodyEnd *CFGNode = first
		if n.Body != nil {
			bodyEnd = buildBlock(cfg, first, n.Body.Statements)
		}
		check := cfg.newNode(NodeLoopHead)
		check.Condition = n.Cond
		connect(bodyEnd, check)
		connect(check, first)
		after := cfg.newNode(NodeMerge)
		connect(check, after)
		return after

	case *ast.ForStmt:
		cur := pred
		if n.Init != nil {
			cur = buildStmt(cfg, cur, n.Init)
		}
		head := cfg.newNode(NodeLoopHead)
		head.Condition = n.Cond
		connect(cur, head)
		bodyEnd := head
		if n.Body != nil {
			bodyEnd = buildBlock(cfg, head, n.Body.Statements)
		}
		if n.Post != nil {
			bodyEnd = buildStmt(cfg, bodyEnd, n.Post)
		}
		connect(bodyEnd, head)
		after := cfg.newNode(NodeMerge)
		connect(head, after)
		return after

	case *ast.ForInStmt:
		head := cfg.newNode(NodeLoopHead)
		connect(pred, head)
		bodyEnd := head
		if n.Body != nil {
			bodyEnd = buildBlock(cfg, head, n.Body.Statements)
		}
		connect(bodyEnd, head)
		after := cfg.newNode(NodeMerge)
		connect(head, after)
		return after

	case *ast.BlockStmt:
		return buildBlock(cfg, pred, n.Statements)

	case *ast.TryCatchStmt:
		merge := cfg.newNode(NodeMerge)
		if n.Try != nil {
			connect(buildBlock(cfg, pred, n.Try.Statements), merge)
		}
		if n.Catch != nil {
			connect(buildBlock(cfg, pred, n.Catch.Statements), merge)
		}
		cur := merge
		if n.Finally != nil {
			cur = buildBlock(cfg, merge, n.Finally.Statements)
		}
		return cur

	case *ast.ReturnStmt, *ast.BreakStmt, *ast.ContinueStmt:
		node := cfg.newNode(NodeStatement)
		node.Stmt = s
		connect(pred, node)
		// No successor: control leaves the block here, so later sibling
		// statements (if any) stay unreachable from this node.
		return node

	default:
		node := cfg.newNode(NodeStatement)
		node.Stmt = s
		connect(pred, node)
		return node
	}
}

// markReachable flags every node reachable from entry (BFS), the basis for
// the dead-code check.
func (c *CFG) markReachable() {
	queue := []*CFGNode{c.Entry}
	c.Entry.Reachable = true
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, s := range n.Successors {
			if !s.Reachable {
				s.Reachable = true
				queue = append(queue, s)
			}
		}
	}
}
