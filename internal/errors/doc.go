// Package errors provides coded, actionable errors for tally.
//
// Every TallyError carries a code from the registry (e.g. "E020"), a
// category, a short message and optionally a longer detail and a hint:
//
//	err := errors.New("E020").
//	    WithDetail(`counter.step must be an integer, got "two"`).
//	    WithSuggestion("Set counter.step to a whole number such as 1 or 5.")
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR E020: Invalid configuration value
//	//
//	//   counter.step must be an integer, got "two"
//	//
//	//   Hint: Set counter.step to a whole number such as 1 or 5.
//
// Codes are grouped by category: E020-E039 config, E060-E079 protocol,
// E080-E099 server.
package errors
