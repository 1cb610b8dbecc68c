package ctdecision

// Visit is one answered question on the walked path.
type Visit struct {
	Node   NodeID `json:"node"`
	Answer Answer `json:"answer"`
}

// Result is the state reached after applying answers.
type Result struct {
	Outcome Outcome `json:"outcome"`
	// Next is the question awaiting an answer while the outcome is pending.
	Next NodeID  `json:"next,omitempty"`
	Path []Visit `json:"path"`
}

// Done reports whether an outcome was reached.
func (r Result) Done() bool {
	return r.Outcome != Pending
}

// Evaluate consumes answers in the order questions are asked along the path.
// The walk stops at the first outcome, ignoring any further answers, or at the
// first unanswered or missing answer with a pending outcome.
func (t *Tree) Evaluate(answers []Answer) Result {
	i := 0
	return t.run(func(NodeID) Answer {
		if i >= len(answers) {
			return Unanswered
		}
		a := answers[i]
		i++
		return a
	})
}

// EvaluateByNode walks the tree using answers keyed by node. Answers for
// nodes off the walked path are ignored.
func (t *Tree) EvaluateByNode(answers map[NodeID]Answer) Result {
	return t.run(func(node NodeID) Answer {
		return answers[node]
	})
}

func (t *Tree) run(answerFor func(NodeID) Answer) Result {
	result := Result{Path: []Visit{}}
	node := t.start
	// A validated tree never visits a node twice.
	for len(result.Path) <= len(t.questions) {
		answer := answerFor(node)
		target, err := t.Step(node, answer)
		if err != nil {
			result.Next = node
			return result
		}
		result.Path = append(result.Path, Visit{Node: node, Answer: answer})
		if target.Terminal() {
			result.Outcome = target.Outcome
			return result
		}
		node = target.Next
	}
	result.Next = node
	return result
}

// Evaluate walks the default tree.
func Evaluate(answers []Answer) Result {
	return defaultTree.Evaluate(answers)
}

// EvaluateByNode walks the default tree with keyed answers.
func EvaluateByNode(answers map[NodeID]Answer) Result {
	return defaultTree.EvaluateByNode(answers)
}

// Step performs a single transition of the default tree.
func Step(node NodeID, answer Answer) (Target, error) {
	return defaultTree.Step(node, answer)
}

// Questions lists the questions of the default tree.
func Questions() []Question {
	return defaultTree.Questions()
}
