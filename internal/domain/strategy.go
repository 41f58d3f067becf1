package domain

// Strategy is a prompting strategy: a fixed preamble prepended to the
// generation prompt to bias the model's reasoning style. Strategies that make
// the model deliberate before answering put the final answer at the end of
// the response, so the last fenced block is the one to extract.
type Strategy struct {
	Name            string
	Preamble        string
	FinalAnswerLast bool
}

const (
	// StrategyStepByStep asks for explicit intermediate reasoning.
	// ref: https://arxiv.org/pdf/2211.01910
	StrategyStepByStep = "sbs"

	// StrategyTreeOfThought asks for multi-perspective deliberation.
	// ref: https://github.com/dave1010/tree-of-thought-prompting
	StrategyTreeOfThought = "tot"
)

var strategies = map[string]Strategy{
	StrategyStepByStep: {
		Name:            StrategyStepByStep,
		Preamble:        "Let's work this out in a step by step way to be sure we have the right answer.\n\n",
		FinalAnswerLast: true,
	},
	StrategyTreeOfThought: {
		Name: StrategyTreeOfThought,
		Preamble: "Imagine three different experts are answering this question. All experts will write down 1 step of their thinking, then share it with the group.\n" +
			"Then all experts will go on to the next step, etc. If any expert realises they're wrong at any point then they leave.\n\n",
		FinalAnswerLast: true,
	},
}

// StrategyByName resolves a strategy from its CLI name.
func StrategyByName(name string) (Strategy, bool) {
	s, ok := strategies[name]
	return s, ok
}

// StrategyNames lists the accepted strategy names.
func StrategyNames() []string {
	return []string{StrategyStepByStep, StrategyTreeOfThought}
}
