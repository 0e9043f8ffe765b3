package vocab

func linearAlgebraRules() []Rule {
	return inDomain(LinearAlgebra,
		cmd("det", "the determinant of"),
		rx(`\\det\s*\(([^()]*)\)`, "the determinant of $1"),
		cmd("tr", "the trace of"),
		rx(`\\operatorname\{tr\}`, "the trace of"),
		rx(`\\operatorname\{rank\}`, "the rank of"),
		rx(`\\operatorname\{span\}`, "the span of"),
		rx(`\\operatorname\{diag\}`, "the diagonal matrix with entries"),
		rx(`\\operatorname\{Null\}|\\operatorname\{null\}`, "the null space of"),
		rx(`\\operatorname\{Range\}|\\operatorname\{range\}|\\operatorname\{Im\}`, "the range of"),
		cmd("ker", "the kernel of"),
		cmd("dim", "the dimension of"),
		rx(`\\mathbb\{R\}\^\{([a-z])\s*\\times\s*([a-z])\}`, "the space of $1 by $2 real matrices"),
		rx(`\\mathbb\{C\}\^\{([a-z])\s*\\times\s*([a-z])\}`, "the space of $1 by $2 complex matrices"),
		rx(`([A-Za-z])\^\{?-T\}?`, "$1 inverse transpose"),
		rx(`([A-Za-z])\^\{?H\}?`, "$1 conjugate transpose"),
		rx(`\\\|([^|]*)\\\|_\{?2\}?`, "the 2-norm of $1,"),
		rx(`\\\|([^|]*)\\\|_\{?F\}?`, "the Frobenius norm of $1,"),
		rx(`\\\|([^|]*)\\\|_\{?\\infty\}?`, "the infinity norm of $1,"),
		rx(`\\\|([^|]*)\\\|_\{?1\}?`, "the 1-norm of $1,"),
		rx(`\\kappa\s*\(([^()]*)\)`, "the condition number of $1"),
		rx(`\\lambda_\{?\\max\}?`, "lambda max"),
		rx(`\\lambda_\{?\\min\}?`, "lambda min"),
		rx(`\\sigma_\{?\\max\}?`, "sigma max"),
		rx(`\\sigma_\{?\\min\}?`, "sigma min"),
		cmd("oplus", "direct sum").prio(5),
		cmd("otimes", "Kronecker product").prio(5),
		rx(`\\succ\b`, "is positive definite relative to"),
		rx(`\\succeq\s*0`, "is positive semidefinite"),
		rx(`\\succ\s*0`, "is positive definite"),
		rx(`\\perp`, "is orthogonal to").prio(5),
		rx(`\bI_\{?([a-z0-9])\}?`, "the $1 by $1 identity matrix"),
	)
}
