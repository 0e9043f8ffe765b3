package vocab

func setLogicRules() []Rule {
	return inDomain(SetLogic,
		rx(`\\mathcal\{P\}\(([^()]*)\)`, "the power set of $1"),
		rx(`\\wp\s*\(([^()]*)\)`, "the power set of $1"),
		rx(`\|([A-Za-z])\|`, "the cardinality of $1").prio(5),
		rx(`\\#\s*([A-Za-z])`, "the cardinality of $1"),
		rx(`([A-Za-z])\^\{?c\}?`, "the complement of $1"),
		rx(`([A-Za-z])\^\{?\\complement\}?`, "the complement of $1"),
		cmd("triangle", "symmetric difference").prio(5),
		cmd("vdash", "proves"), sym("⊢", "proves"),
		cmd("models", "models"), sym("⊨", "models"),
		cmd("top", "true"), cmd("bot", "false"),
		cmd("therefore", "therefore"), sym("∴", "therefore"),
		cmd("because", "because"), sym("∵", "because"),
		rx(`\\exists\s*!`, "there exists a unique"),
		rx(`\\forall\s*([A-Za-z])\s*\\in\s*([A-Za-z])`, "for every $1 in $2"),
		rx(`\\exists\s*([A-Za-z])\s*\\in\s*([A-Za-z])`, "there is some $1 in $2"),
		cmd("cong", "is in bijection with"),
		cmd("aleph", "aleph").prio(1),
		rx(`\\mathfrak\{c\}`, "the cardinality of the continuum"),
		rx(`\\operatorname\{card\}`, "the cardinality of"),
		rx(`([A-Za-z])\s*\\times\s*([A-Za-z])`, "the Cartesian product of $1 and $2"),
	)
}
