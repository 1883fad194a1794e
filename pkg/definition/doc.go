/*
Package definition loads automata described declaratively in YAML or JSON and
compiles them into fsm machines over string symbols.

A base definition lists its states, accepting states and an ordered case list:

	name: has_hello
	tokenizer: runes
	states: [Q0, Q1, Q2, Q3, Q4, Q5]
	accept: [Q5]
	transitions:
	  - {from: Q0, on: h, to: Q1}
	  - {from: Q1, on: e, to: Q2}
	  - {from: Q2, on: l, to: Q3}
	  - {from: Q3, on: l, to: Q4}
	  - {from: Q4, on: o, to: Q5}
	  - {from: Q5, to: Q5}
	  - {to: Q0}

Omitting "from" or "on" matches any state or input. A composite definition
combines previously defined automata:

	name: hello_and_a
	compose: {op: and, of: [has_hello, starts_with_a]}

Compilation rejects tables that are not total: with a closed alphabet every
(state, symbol) pair needs a case, otherwise every state needs a case without
"on".
*/
package definition
