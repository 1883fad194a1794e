/*
Package runner evaluates compiled automata against input strings.

The runner is the bridge between the pure machines of package fsm and the
outside world: it splits the input with the automaton's tokenizer, rejects
symbols outside a closed alphabet, logs each step and notifies the registered
hooks. Every evaluation steps its own machine, so a Runner is safe for
concurrent use.

# Usage

	r := runner.New(
		runner.WithLogger(logger),
		runner.WithHooks(metrics.Hooks()),
	)

	res, err := r.Evaluate(ctx, automaton, "a hello a")
	if err != nil {
		return err
	}
	fmt.Println(res.Verdict())
*/
package runner
