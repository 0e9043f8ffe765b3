package vocab

// Abbreviations 返回预处理阶段使用的缩写展开表。
// General 条目总是生效，其余条目只在对应子语境中生效。
func Abbreviations() []Rule {
	var out []Rule
	out = append(out, inDomain(General,
		rx(`\biff\b`, "if and only if"),
		rx(`\bs\.t\.`, "such that"),
		rx(`\bw\.r\.t\.`, "with respect to"),
		rx(`\bi\.e\.`, "that is"),
		rx(`\be\.g\.`, "for example"),
		rx(`\b(?:wlog|WLOG|w\.l\.o\.g\.)`, "without loss of generality"),
		rx(`\bresp\.`, "respectively"),
		rx(`\bcf\.`, "compare"),
		rx(`\bviz\.`, "namely"),
		rx(`\bet al\.`, "and others"),
		rx(`\bLHS\b`, "left-hand side"),
		rx(`\bRHS\b`, "right-hand side"),
		rx(`\bTFAE\b`, "the following are equivalent"),
		rx(`\bw\.p\.`, "with probability"),
		rx(`\bQ\.E\.D\.`, "Q E D"),
	)...)

	out = append(out, inDomain(ODE,
		rx(`\bODEs\b`, "ordinary differential equations"),
		rx(`\bODE\b`, "ordinary differential equation"),
		rx(`\bPDEs\b`, "partial differential equations"),
		rx(`\bPDE\b`, "partial differential equation"),
		rx(`\bIVP\b`, "initial value problem"),
		rx(`\bBVP\b`, "boundary value problem"),
	)...)

	out = append(out, inDomain(Numerical,
		rx(`\bODEs\b`, "ordinary differential equations"),
		rx(`\bODE\b`, "ordinary differential equation"),
		rx(`\bIVP\b`, "initial value problem"),
		rx(`\bflops\b`, "floating point operations"),
		rx(`\bulp\b`, "unit in the last place"),
	)...)

	out = append(out, inDomain(Probability,
		rx(`\bi\.i\.d\.`, "independent and identically distributed"),
		rx(`\ba\.s\.`, "almost surely"),
		rx(`\bpdf\b`, "probability density function"),
		rx(`\bcdf\b`, "cumulative distribution function"),
		rx(`\bpmf\b`, "probability mass function"),
		rx(`\br\.v\.`, "random variable"),
	)...)

	out = append(out, inDomain(Calculus,
		rx(`\ba\.e\.`, "almost everywhere"),
	)...)

	out = append(out, inDomain(Topology,
		rx(`\bnbhd\b`, "neighborhood"),
		rx(`\bnbhds\b`, "neighborhoods"),
	)...)

	out = append(out, inDomain(LinearAlgebra,
		rx(`\bSPD\b`, "symmetric positive definite"),
		rx(`\bPSD\b`, "positive semidefinite"),
	)...)

	return out
}
