package vocab

func topologyRules() []Rule {
	return inDomain(Topology,
		rx(`\\overline\{([A-Za-z])\}`, "the closure of $1").prio(5),
		rx(`\\bar\{([A-Za-z])\}`, "the closure of $1").prio(5),
		rx(`\\operatorname\{cl\}`, "the closure of"),
		rx(`\\operatorname\{int\}`, "the interior of"),
		rx(`\\operatorname\{Int\}`, "the interior of"),
		rx(`\\mathring\{([^{}]*)\}`, "the interior of $1"),
		rx(`([A-Za-z])\^\{?\\circ\}?`, "the interior of $1"),
		rx(`\\partial\s*([A-Z])`, "the boundary of $1"),
		rx(`\\operatorname\{Bd\}`, "the boundary of"),
		rx(`\(([A-Za-z]),\s*\\mathcal\{([A-Za-z])\}\)`, "the space $1 with topology script $2"),
		rx(`\\mathcal\{T\}`, "the topology T"),
		rx(`\\mathcal\{U\}`, "the cover U"),
		rx(`B_\{?([A-Za-z\\]+)\}?\(([^()]*)\)`, "the open ball of radius $1 around $2"),
		rx(`B\(([^(),]*),\s*([^()]*)\)`, "the open ball around $1 of radius $2"),
		rx(`\\pi_1\s*\(([^()]*)\)`, "the fundamental group of $1"),
		rx(`\\pi_\{?([0-9n])\}?\s*\(([^()]*)\)`, "the $1-th homotopy group of $2"),
		rx(`H_\{?([0-9n])\}?\s*\(([^()]*)\)`, "the $1-th homology group of $2"),
		rx(`S\^\{?([0-9n])\}?`, "the $1-sphere"),
		rx(`T\^\{?([0-9n])\}?`, "the $1-torus"),
		cmd("simeq", "is homotopy equivalent to").prio(5),
		cmd("cong", "is homeomorphic to").prio(5),
		cmd("approx", "is homeomorphic to").prio(5),
		cmd("hookrightarrow", "embeds in").prio(5),
	)
}
