package macro

func defineObject(e *Engine, name, body string) {
	repl := e.ParseReplacement(body, nil, "", 0)
	e.Table.Define(Macro{
		Name:        e.interner.InternString(name),
		Kind:        ObjectLike,
		Replacement: repl,
	})
}

func defineFunction(e *Engine, name string, params []string, variadicName string, body string) {
	idx := make(map[string]int, len(params))
	for i, p := range params {
		idx[p] = i
	}
	variadicIndex := len(params)
	repl := e.ParseReplacement(body, idx, variadicName, variadicIndex)

	arity := len(params)
	variadic := variadicName != ""
	if variadic {
		arity++
	}

	e.Table.Define(Macro{
		Name:        e.interner.InternString(name),
		Kind:        FunctionLike,
		Params:      arity,
		Variadic:    variadic,
		Replacement: repl,
	})
}
